package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"rfrcli/internal/infrastructure"
)

var (
	// ErrDirectory is returned when the target directory cannot be
	// created or validated.
	ErrDirectory = errors.New("cannot validate target directory")

	// ErrDownload is returned for network or filesystem failures while
	// fetching an archive.
	ErrDownload = errors.New("download failed")
)

// Pacing between consecutive real downloads. The publisher's site is slow
// and rate-limits aggressive clients.
const defaultDownloadInterval = 500 * time.Millisecond

// Fetcher downloads archives into a flat directory cache.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
	logger  *slog.Logger
}

// New creates a Fetcher using the given HTTP client. A nil client gets a
// default with a generous timeout sized for multi-megabyte archives.
func New(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(defaultDownloadInterval), 1),
		logger:  logger.With(slog.String("component", "fetcher")),
	}
}

// EnsureLocal returns the local path for rawURL inside dir, downloading the
// file only if it is absent or overwrite is set. The fast path is a plain
// stat: an existing file is trusted without re-validating content.
// Concurrent callers asking for the same destination share one download, so
// the at-most-one-fetch invariant holds across goroutines.
func (f *Fetcher) EnsureLocal(ctx context.Context, rawURL, dir string, overwrite bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDirectory, dir, err)
	}

	base, err := basename(rawURL)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(dir, base)

	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			infrastructure.CacheHitsTotal.Inc()
			f.logger.DebugContext(ctx, "cache hit", slog.String("path", dest))
			return dest, nil
		}
	}

	_, err, _ = f.group.Do(dest, func() (interface{}, error) {
		return nil, f.download(ctx, rawURL, dest)
	})
	if err != nil {
		infrastructure.DownloadsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	infrastructure.DownloadsTotal.WithLabelValues("ok").Inc()
	return dest, nil
}

// download fetches rawURL into dest. The body is written to a temporary
// file in the same directory and renamed into place on completion, so a
// failed download never looks like a cached archive.
func (f *Fetcher) download(ctx context.Context, rawURL, dest string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request for %s: %v", ErrDownload, rawURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetch %s: %v", ErrDownload, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrDownload, rawURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".part-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrDownload, err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrDownload, dest, err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: finalize %s: %v", ErrDownload, dest, err)
	}

	f.logger.InfoContext(ctx, "archive downloaded",
		slog.String("url", rawURL),
		slog.String("path", dest),
		slog.Int64("size_bytes", written))
	return nil
}

// basename resolves the cache file name for a URL from the final path
// segment.
func basename(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %v", ErrDownload, rawURL, err)
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("%w: no file name in %s", ErrDownload, rawURL)
	}
	return base, nil
}
