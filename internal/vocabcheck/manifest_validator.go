package vocabcheck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robalyx/stemdata/internal/export"
	"github.com/robalyx/stemdata/internal/export/types"
)

// ManifestValidator compares the files of a build directory with the checksums
// recorded in its manifest. Directories without a manifest are skipped.
type ManifestValidator struct{}

// NewManifestValidator creates a new ManifestValidator instance.
func NewManifestValidator() *ManifestValidator {
	return &ManifestValidator{}
}

// Validate verifies size and digest of every listed file.
func (v *ManifestValidator) Validate(lists *Lists) []Issue {
	manifest, err := export.LoadManifest(lists.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return []Issue{{
			Type:        "invalid_manifest",
			Description: err.Error(),
			File:        types.ManifestJSON,
		}}
	}

	var issues []Issue
	for _, file := range manifest.Files {
		sum, size, err := export.ChecksumFile(filepath.Join(lists.Dir, file.Name))
		if err != nil {
			issues = append(issues, Issue{
				Type:        "missing_file",
				Description: fmt.Sprintf("%s is listed in the manifest but cannot be read", file.Name),
				File:        file.Name,
			})
			continue
		}

		if sum != file.SHA256 || size != file.Size {
			issues = append(issues, Issue{
				Type:        "checksum_mismatch",
				Description: fmt.Sprintf("%s does not match the checksum recorded in the manifest", file.Name),
				File:        file.Name,
			})
		}
	}

	return issues
}
