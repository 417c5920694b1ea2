// Command scraper runs the retrieval pipeline from the command line:
// discover published releases, download and extract the requested ones,
// and print the spot curves as JSON lines.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"rfrcli/internal/config"
	"rfrcli/internal/curve"
	"rfrcli/internal/fetch"
	"rfrcli/internal/infrastructure"
	"rfrcli/internal/scrape"
	"rfrcli/internal/services"
)

var version = "dev"

func main() {
	list := flag.Bool("list", false, "list discovered releases and exit")
	dates := flag.String("dates", "", "comma-separated release dates (yyyymmdd or dd-mm-yyyy)")
	limit := flag.Int("limit", curve.MaxPoints, "number of curve points to read (30-150)")
	dataDir := flag.String("data", "", "data directory (defaults to config)")
	overwrite := flag.Bool("overwrite", false, "re-download archives even when cached")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := infrastructure.InitTracing(ctx, version)
	if err != nil {
		logger.Warn("tracing disabled", slog.String("error", err.Error()))
	} else {
		defer shutdownTracing(context.Background())
	}

	paths := cfg.Paths()
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create data directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	scraper := scrape.NewScraper(&http.Client{Timeout: cfg.Scrape.RequestTimeout}, logger)
	fetcher := fetch.New(&http.Client{Timeout: cfg.Scrape.DownloadTimeout}, logger)
	service := services.NewCurveService(scraper, fetcher, cfg.Scrape.Pages, paths, logger)

	if *list {
		if err := listReleases(ctx, service); err != nil {
			logger.Error("listing releases failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	keys, err := parseDates(*dates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	selections, failures := service.LoadSelections(ctx, keys, *limit, *overwrite)

	enc := json.NewEncoder(os.Stdout)
	for _, sel := range selections {
		if err := enc.Encode(sel); err != nil {
			logger.Error("encoding selection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	for date, err := range failures {
		logger.Error("selection failed",
			slog.String("date", date),
			slog.String("error", err.Error()))
	}

	if len(selections) == 0 && len(failures) > 0 {
		os.Exit(1)
	}
}

func listReleases(ctx context.Context, service *services.CurveService) error {
	releases, err := service.ListReleases(ctx)
	if err != nil {
		return err
	}
	for _, rel := range releases {
		fmt.Printf("%s\t%s\t%s\n", rel.Date, rel.Label, rel.URL)
	}
	return nil
}

// parseDates accepts both DateKeys and display labels and normalizes
// everything to yyyymmdd.
func parseDates(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("no dates given; use -dates or -list")
	}

	var keys []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		switch len(part) {
		case curve.DateKeyLen:
			keys = append(keys, part)
		case curve.LabelLen:
			keys = append(keys, curve.LabelToKey(part))
		default:
			return nil, fmt.Errorf("invalid date %q: want yyyymmdd or dd-mm-yyyy", part)
		}
	}
	return keys, nil
}
