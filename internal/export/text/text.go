package text

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robalyx/stemdata/internal/export/types"
	"github.com/robalyx/stemdata/internal/vocabulary"
)

// Exporter writes the plain line-per-entry files consumed by the stemmer.
type Exporter struct {
	outDir string
}

// New creates a new text exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Files returns the names of the files written by Export.
func (e *Exporter) Files() []string {
	return []string{types.FlexionsText, types.InvariantsText}
}

// Export writes one flexion per line in rank order and one invariant word per line,
// shortest first.
func (e *Exporter) Export(vocab *vocabulary.Vocabulary) error {
	if err := types.RemoveExisting(e.outDir, e.Files()...); err != nil {
		return err
	}

	flexions := make([]string, 0, len(vocab.Flexions))
	for _, entry := range vocab.Flexions {
		flexions = append(flexions, entry.Value)
	}

	if err := e.writeLines(types.FlexionsText, flexions); err != nil {
		return fmt.Errorf("failed to export flexions: %w", err)
	}

	if err := e.writeLines(types.InvariantsText, vocab.Invariants); err != nil {
		return fmt.Errorf("failed to export invariants: %w", err)
	}

	return nil
}

// writeLines writes each line followed by a newline.
func (e *Exporter) writeLines(filename string, lines []string) error {
	file, err := os.Create(filepath.Join(e.outDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create text file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush text file: %w", err)
	}

	return file.Close()
}
