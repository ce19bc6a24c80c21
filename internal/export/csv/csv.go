package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/robalyx/stemdata/internal/export/types"
	"github.com/robalyx/stemdata/internal/vocabulary"
)

// Exporter handles exporting the vocabulary to csv files.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Files returns the names of the files written by Export.
func (e *Exporter) Files() []string {
	return []string{types.FlexionsCSV, types.InvariantsCSV}
}

// Export writes flexions and invariant words to separate csv files.
func (e *Exporter) Export(vocab *vocabulary.Vocabulary) error {
	// Remove existing files if they exist
	if err := types.RemoveExisting(e.outDir, e.Files()...); err != nil {
		return err
	}

	flexionRows := make([][]string, 0, len(vocab.Flexions))
	for _, entry := range vocab.Flexions {
		flexionRows = append(flexionRows, []string{
			entry.Value,
			strconv.Itoa(entry.Count),
			fmt.Sprintf("%.6f", vocab.Share(entry)),
		})
	}

	if err := e.writeFile(types.FlexionsCSV, []string{"flexion", "count", "share"}, flexionRows); err != nil {
		return fmt.Errorf("failed to export flexions: %w", err)
	}

	invariantRows := make([][]string, 0, len(vocab.Invariants))
	for _, word := range vocab.Invariants {
		invariantRows = append(invariantRows, []string{word, strconv.Itoa(utf8.RuneCountInString(word))})
	}

	if err := e.writeFile(types.InvariantsCSV, []string{"word", "length"}, invariantRows); err != nil {
		return fmt.Errorf("failed to export invariants: %w", err)
	}

	return nil
}

// writeFile writes a header and rows to a csv file.
func (e *Exporter) writeFile(filename string, header []string, rows [][]string) error {
	file, err := os.Create(filepath.Join(e.outDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	// Create CSV writer
	writer := csv.NewWriter(file)

	// Write header
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Write each record
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return file.Close()
}
