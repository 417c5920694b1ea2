package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline counters, registered on the default prometheus registry and
// served by the web binary under /metrics.
var (
	// ScrapePagesTotal counts listing pages fetched, by outcome.
	ScrapePagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rfrcli",
		Name:      "scrape_pages_total",
		Help:      "Listing pages fetched by the scraper.",
	}, []string{"outcome"})

	// DownloadsTotal counts archive downloads performed over the network.
	DownloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rfrcli",
		Name:      "downloads_total",
		Help:      "Archive downloads performed, by outcome.",
	}, []string{"outcome"})

	// CacheHitsTotal counts downloads satisfied from the local cache
	// without network I/O.
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rfrcli",
		Name:      "download_cache_hits_total",
		Help:      "Downloads satisfied by an existing local file.",
	})
)
