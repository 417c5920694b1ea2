// Package services orchestrates the retrieval pipeline: listing-page
// scrape, archive download, workbook extraction, and spot-curve read. The
// HTTP transport and the CLI both sit on top of this layer.
package services
