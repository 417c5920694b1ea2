// Package fetch is the local download cache for release archives.
//
// A cached archive is a file at {dir}/{basename(url)}; existence on disk is
// the only state. EnsureLocal downloads at most once per distinct URL and
// directory unless the caller forces an overwrite, and never leaves a
// partially written file behind on failure.
package fetch
