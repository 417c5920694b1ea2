// Package http exposes the retrieval pipeline as a JSON API for the
// presentation layer: release discovery under /api/releases and curve
// loading under /api/curves/{date}.
package http
