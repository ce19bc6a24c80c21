package dictionary

import (
	"bufio"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// DefaultPattern matches the dictionary files inside the source directory.
const DefaultPattern = "*.xml"

const paradigmElement = "Paradigm"

// XMLSource reads GrammarDB-style XML files from a directory.
type XMLSource struct {
	Dir     string
	Pattern string
}

// NewXMLSource creates a new XMLSource. An empty pattern selects every XML file.
func NewXMLSource(dir, pattern string) *XMLSource {
	if pattern == "" {
		pattern = DefaultPattern
	}

	return &XMLSource{
		Dir:     dir,
		Pattern: pattern,
	}
}

// Files returns the sorted paths of the files matching the pattern.
// A missing directory or an empty match set is reported as ErrSourceUnavailable.
func (s *XMLSource) Files() ([]string, error) {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceUnavailable, s.Dir)
	}

	files, err := filepath.Glob(filepath.Join(s.Dir, s.Pattern))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %w", ErrSourceUnavailable, s.Pattern, err)
	}

	files = slices.DeleteFunc(files, func(path string) bool {
		fi, statErr := os.Stat(path)
		return statErr != nil || fi.IsDir()
	})

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files matching %q in %s", ErrSourceUnavailable, s.Pattern, s.Dir)
	}

	slices.Sort(files)

	return files, nil
}

// Walk decodes the file one Paradigm element at a time so that only the current
// paradigm is held in memory. Context cancellation is checked between paradigms.
func (s *XMLSource) Walk(ctx context.Context, file string, fn func(*Paradigm) error) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	return DecodeParadigms(ctx, bufio.NewReader(f), fn)
}

// DecodeParadigms streams every Paradigm element found in r to fn, at any depth.
func DecodeParadigms(ctx context.Context, r io.Reader, fn func(*Paradigm) error) error {
	decoder := xml.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: failed to read token: %w", ErrSourceUnavailable, err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != paradigmElement {
			continue
		}

		var paradigm Paradigm
		if err := decoder.DecodeElement(&paradigm, &start); err != nil {
			return fmt.Errorf("%w: failed to decode paradigm: %w", ErrSourceUnavailable, err)
		}

		if err := fn(&paradigm); err != nil {
			return err
		}
	}
}
