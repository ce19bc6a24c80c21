package config

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/tailscale/hujson"
)

// Exceptions holds the curated corrections applied on top of the extracted vocabulary.
type Exceptions struct {
	Invariants        []string `json:"invariants"`        // Words always treated as invariant
	ExcludeFlexions   []string `json:"excludeFlexions"`   // Flexions never emitted
	ExcludeInvariants []string `json:"excludeInvariants"` // Words never emitted as invariant
}

// LoadExceptions loads the exceptions file. An empty path yields empty exceptions.
func LoadExceptions(path string) (*Exceptions, error) {
	if path == "" {
		return &Exceptions{}, nil
	}

	// Read exceptions file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exceptions file: %w", err)
	}

	// Parse JSONC
	standardJSON, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to standardize JSONC: %w", err)
	}

	// Parse exceptions
	var exceptions Exceptions
	if err := sonic.Unmarshal(standardJSON, &exceptions); err != nil {
		return nil, fmt.Errorf("failed to parse exceptions JSON: %w", err)
	}

	return &exceptions, nil
}
