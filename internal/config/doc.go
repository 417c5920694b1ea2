// Package config loads application configuration from environment
// variables and an optional YAML file, and resolves the on-disk layout for
// downloaded archives and extracted workbooks.
//
// Directories are never read ambiently by the pipeline packages: config
// only supplies the defaults that the binaries thread through every call,
// which keeps the pipeline testable against temporary directories.
package config
