package vocabcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robalyx/stemdata/internal/export/types"
)

// Lists holds the raw lines of the produced text files.
type Lists struct {
	Dir        string
	Flexions   []string
	Invariants []string
}

// Load reads the text files of a build directory. Lines are kept verbatim so that
// blank and padded entries can be reported.
func Load(buildDir string) (*Lists, error) {
	flexions, err := readLines(filepath.Join(buildDir, types.FlexionsText))
	if err != nil {
		return nil, err
	}

	invariants, err := readLines(filepath.Join(buildDir, types.InvariantsText))
	if err != nil {
		return nil, err
	}

	return &Lists{
		Dir:        buildDir,
		Flexions:   flexions,
		Invariants: invariants,
	}, nil
}

// readLines splits a file into lines, ignoring the final newline.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return nil, nil
	}

	return strings.Split(content, "\n"), nil
}
