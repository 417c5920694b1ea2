package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rfrcli/internal/archive"
	"rfrcli/internal/config"
	"rfrcli/internal/curve"
	"rfrcli/internal/fetch"
	"rfrcli/internal/infrastructure"
	"rfrcli/internal/scrape"
)

// Release is one published term structure discovered on the listing pages.
type Release struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// CurveService runs the discovery-and-extraction pipeline. Directories are
// held once here and threaded explicitly into every pipeline call.
type CurveService struct {
	scraper *scrape.Scraper
	fetcher *fetch.Fetcher
	pages   []string
	paths   *config.Paths
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCurveService creates the service on top of the given pipeline pieces.
func NewCurveService(scraper *scrape.Scraper, fetcher *fetch.Fetcher, pages []string, paths *config.Paths, logger *slog.Logger) *CurveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurveService{
		scraper: scraper,
		fetcher: fetcher,
		pages:   pages,
		paths:   paths,
		logger:  logger.With(slog.String("component", "curve_service")),
		tracer:  infrastructure.Tracer(),
	}
}

// ListReleases scrapes the listing pages and returns the discovered
// releases, newest first. The index is built fresh on every call; only the
// download cache persists across runs.
func (s *CurveService) ListReleases(ctx context.Context) ([]Release, error) {
	ctx, span := s.tracer.Start(ctx, "curve.ListReleases")
	defer span.End()

	index, err := s.scraper.ScrapePages(ctx, s.pages)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(index) == 0 {
		return nil, ErrNoReleasesFound
	}

	keys := make([]string, 0, len(index))
	for key := range index {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	releases := make([]Release, 0, len(keys))
	for _, key := range keys {
		releases = append(releases, Release{
			Date:  key,
			Label: curve.KeyToLabel(key),
			URL:   index[key],
		})
	}
	span.SetAttributes(attribute.Int("releases", len(releases)))
	return releases, nil
}

// GetCurve runs the whole pipeline for one release date and returns the
// selection ready for rendering. overwrite forces a re-download of the
// archive even when it is already cached.
func (s *CurveService) GetCurve(ctx context.Context, dateKey string, limit int, overwrite bool) (*curve.Selection, error) {
	ctx, span := s.tracer.Start(ctx, "curve.GetCurve",
		trace.WithAttributes(
			attribute.String("release.date", dateKey),
			attribute.Int("limit", limit),
		))
	defer span.End()

	if !curve.IsDateKey(dateKey) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateKey, dateKey)
	}

	index, err := s.scraper.ScrapePages(ctx, s.pages)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sel, err := s.loadFromIndex(ctx, index, dateKey, limit, overwrite)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return sel, nil
}

// LoadSelections loads several releases against one fresh scrape. Each
// selection is processed independently: a failing date is reported in the
// error map and does not block the others.
func (s *CurveService) LoadSelections(ctx context.Context, dateKeys []string, limit int, overwrite bool) ([]curve.Selection, map[string]error) {
	ctx, span := s.tracer.Start(ctx, "curve.LoadSelections",
		trace.WithAttributes(attribute.Int("selections", len(dateKeys))))
	defer span.End()

	failures := make(map[string]error)

	index, err := s.scraper.ScrapePages(ctx, s.pages)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		for _, key := range dateKeys {
			failures[key] = err
		}
		return nil, failures
	}

	var selections []curve.Selection
	for _, key := range dateKeys {
		if !curve.IsDateKey(key) {
			failures[key] = fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
			continue
		}
		sel, err := s.loadFromIndex(ctx, index, key, limit, overwrite)
		if err != nil {
			s.logger.WarnContext(ctx, "selection failed",
				slog.String("date", key),
				slog.String("error", err.Error()))
			failures[key] = err
			continue
		}
		selections = append(selections, *sel)
	}
	return selections, failures
}

func (s *CurveService) loadFromIndex(ctx context.Context, index scrape.LinkIndex, dateKey string, limit int, overwrite bool) (*curve.Selection, error) {
	archiveURL, ok := index[dateKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrReleaseNotFound, dateKey)
	}

	archivePath, err := s.fetcher.EnsureLocal(ctx, archiveURL, s.paths.DownloadDir, overwrite)
	if err != nil {
		return nil, err
	}

	workbookPath, err := archive.ExtractTarget(archivePath, s.paths.ExcelDir, config.TermStructurePattern)
	if err != nil {
		return nil, err
	}

	rates, err := curve.ReadSpotRange(workbookPath, curve.SpotSheet, limit)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "curve loaded",
		slog.String("date", dateKey),
		slog.String("workbook", workbookPath),
		slog.Int("points", len(rates)))

	sel := curve.NewSelection(dateKey, workbookPath, rates)
	return &sel, nil
}
