// ABOUTME: Atomic file writes (temp file + rename) and build ID generation for generated charts.
package generate

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
)

// NewBuildID generates a new ULID using crypto/rand entropy.
func NewBuildID() ulid.ULID {
	return ulid.MustNew(ulid.Now(), rand.Reader)
}

// writeFileAtomic writes data to path via a temp file in the same directory,
// so readers never see a half-written chart.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
