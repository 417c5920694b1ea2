// Package scrape discovers term-structure archive links on the publisher's
// listing pages.
//
// The extractor walks a parsed HTML tree and keeps the anchors that follow
// the publisher's naming convention for monthly zip releases, keyed by the
// yyyymmdd DateKey embedded in the file name. The scraper fetches one or
// more listing pages and merges the per-page results into a single
// DateKey -> URL index.
package scrape
