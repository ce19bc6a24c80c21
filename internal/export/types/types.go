package types

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Output file names shared by the format writers, the archive and the checker.
const (
	FlexionsText     = "flexions.txt"
	InvariantsText   = "unchangeable_words.txt"
	FlexionsCSV      = "flexions.csv"
	InvariantsCSV    = "unchangeable_words.csv"
	SQLiteDB         = "stemdata.db"
	FlexionsBinary   = "flexions.bin"
	InvariantsBinary = "unchangeable_words.bin"
	FlexionsChart    = "flexions.png"
	ManifestJSON     = "manifest.json"
)

// RemoveExisting deletes stale output files so that a failed run never leaves
// a mix of old and new files behind.
func RemoveExisting(outDir string, files ...string) error {
	for _, file := range files {
		path := filepath.Join(outDir, file)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove existing file %s: %w", file, err)
		}
	}
	return nil
}
