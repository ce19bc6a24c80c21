package binary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/robalyx/stemdata/internal/export/types"
	"github.com/robalyx/stemdata/internal/vocabulary"
)

// ErrEntryTooLong is returned for entries whose UTF-8 encoding does not fit a uint16 length prefix.
var ErrEntryTooLong = errors.New("entry too long for binary format")

// Exporter handles exporting the vocabulary to compact binary files.
//
// Both files start with a little-endian uint32 entry count. Each entry is a
// little-endian uint16 byte length followed by the UTF-8 bytes; flexion entries
// are followed by their little-endian uint32 occurrence count.
type Exporter struct {
	outDir string
}

// New creates a new binary exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Files returns the names of the files written by Export.
func (e *Exporter) Files() []string {
	return []string{types.FlexionsBinary, types.InvariantsBinary}
}

// Export writes flexions and invariant words to separate binary files.
func (e *Exporter) Export(vocab *vocabulary.Vocabulary) error {
	// Remove existing files if they exist
	if err := types.RemoveExisting(e.outDir, e.Files()...); err != nil {
		return err
	}

	err := e.writeFile(types.FlexionsBinary, len(vocab.Flexions), func(w io.Writer, i int) error {
		entry := vocab.Flexions[i]
		if err := writeString(w, entry.Value); err != nil {
			return err
		}

		count := uint32(min(entry.Count, math.MaxUint32)) //nolint:gosec // clamped above
		return binary.Write(w, binary.LittleEndian, count)
	})
	if err != nil {
		return fmt.Errorf("failed to export flexions: %w", err)
	}

	err = e.writeFile(types.InvariantsBinary, len(vocab.Invariants), func(w io.Writer, i int) error {
		return writeString(w, vocab.Invariants[i])
	})
	if err != nil {
		return fmt.Errorf("failed to export invariants: %w", err)
	}

	return nil
}

// writeFile writes the entry count followed by every entry.
func (e *Exporter) writeFile(filename string, n int, writeEntry func(io.Writer, int) error) error {
	file, err := os.Create(filepath.Join(e.outDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create binary file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	// Write number of records
	count := uint32(n) //nolint:gosec // unlikely to overflow
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("failed to write record count: %w", err)
	}

	// Write each record
	for i := range n {
		if err := writeEntry(w, i); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush binary file: %w", err)
	}

	return file.Close()
}

// writeString writes a uint16 length prefix and the UTF-8 bytes of s.
func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrEntryTooLong, len(s))
	}

	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return fmt.Errorf("failed to write length: %w", err)
	}

	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("failed to write bytes: %w", err)
	}

	return nil
}
