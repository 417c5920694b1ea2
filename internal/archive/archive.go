// Package archive extracts the target worksheet file out of a downloaded
// release archive.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoMatch is returned when no entry in the archive matches the requested
// name pattern. Callers must treat this as a hard failure, not an empty
// result.
var ErrNoMatch = errors.New("no archive entry matches pattern")

// ExtractTarget opens the zip at archivePath, finds the first entry whose
// name contains namePattern (archive order, early exit), writes its
// decompressed bytes to outDir and returns the written path. The archive
// handle is released on every exit path.
func ExtractTarget(archivePath, outDir, namePattern string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer r.Close()

	for _, entry := range r.File {
		if !strings.Contains(entry.Name, namePattern) {
			continue
		}
		return writeEntry(entry, outDir)
	}

	return "", fmt.Errorf("%w: %q in %s", ErrNoMatch, namePattern, archivePath)
}

func writeEntry(entry *zip.File, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	// Entry names in these archives are flat; Base also guards against
	// path traversal in a hostile archive.
	dest := filepath.Join(outDir, filepath.Base(entry.Name))
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}

	_, err = io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("write %s: %w", dest, err)
	}

	return dest, nil
}
