package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the on-disk layout for one data directory:
//
//	data/
//	  ├── download/   (raw release archives)
//	  ├── excel/      (extracted workbooks)
//	  └── logs/       (application logs)
type Paths struct {
	BaseDir     string
	DownloadDir string
	ExcelDir    string
	LogsDir     string
}

// NewPaths builds the layout under baseDir. An empty baseDir defaults to
// "data" relative to the working directory.
func NewPaths(baseDir string) *Paths {
	if baseDir == "" {
		baseDir = "data"
	}
	return &Paths{
		BaseDir:     baseDir,
		DownloadDir: filepath.Join(baseDir, DownloadDirName),
		ExcelDir:    filepath.Join(baseDir, ExcelDirName),
		LogsDir:     filepath.Join(baseDir, LogsDirName),
	}
}

// EnsureDirectories creates the full layout if it does not exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.BaseDir, p.DownloadDir, p.ExcelDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path of a named log file inside the logs
// directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
