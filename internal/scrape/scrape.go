package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html"

	"rfrcli/internal/infrastructure"
)

// ErrBadStatus is returned when a listing page answers with anything other
// than 200 OK. A failing page aborts the whole scrape.
var ErrBadStatus = errors.New("unexpected response status")

// Scraper fetches listing pages and aggregates their release links.
type Scraper struct {
	client    *http.Client
	extractor *Extractor
	logger    *slog.Logger
}

// NewScraper creates a scraper using the given HTTP client. A nil client
// gets a default with a conservative timeout.
func NewScraper(client *http.Client, logger *slog.Logger) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{
		client:    client,
		extractor: &Extractor{},
		logger:    logger.With(slog.String("component", "scraper")),
	}
}

// SetLinkFilter replaces the default archive-name heuristic. Intended for
// callers that need a stricter predicate when the site convention changes.
func (s *Scraper) SetLinkFilter(f LinkFilter) {
	s.extractor.Filter = f
}

// ScrapePages fetches each listing page in order and merges the extracted
// links into one index. Pages later in the list win on DateKey collisions.
// The first failing page aborts the scrape; no partial result is returned.
func (s *Scraper) ScrapePages(ctx context.Context, pageURLs []string) (LinkIndex, error) {
	merged := make(LinkIndex)
	for _, pageURL := range pageURLs {
		links, err := s.scrapePage(ctx, pageURL)
		if err != nil {
			infrastructure.ScrapePagesTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		infrastructure.ScrapePagesTotal.WithLabelValues("ok").Inc()
		for key, u := range links {
			merged[key] = u
		}
		s.logger.InfoContext(ctx, "scraped listing page",
			slog.String("url", pageURL),
			slog.Int("links", len(links)),
			slog.Int("total", len(merged)))
	}
	return merged, nil
}

func (s *Scraper) scrapePage(ctx context.Context, pageURL string) (LinkIndex, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", pageURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrBadStatus, pageURL, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	return s.extractor.Extract(doc), nil
}
