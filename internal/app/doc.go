// Package app assembles the web binary: configuration, pipeline services,
// router, and HTTP server lifecycle.
package app
