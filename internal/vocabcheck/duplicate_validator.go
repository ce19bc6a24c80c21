package vocabcheck

import (
	"fmt"

	"github.com/robalyx/stemdata/internal/export/types"
)

// DuplicateValidator handles exact duplicate validation.
type DuplicateValidator struct{}

// NewDuplicateValidator creates a new DuplicateValidator instance.
func NewDuplicateValidator() *DuplicateValidator {
	return &DuplicateValidator{}
}

// Validate finds entries listed more than once in either file.
func (v *DuplicateValidator) Validate(lists *Lists) []Issue {
	var issues []Issue

	issues = append(issues, v.checkExactDuplicates(types.FlexionsText, lists.Flexions)...)
	issues = append(issues, v.checkExactDuplicates(types.InvariantsText, lists.Invariants)...)

	return issues
}

// checkExactDuplicates finds exact duplicate entries.
func (v *DuplicateValidator) checkExactDuplicates(file string, lines []string) []Issue {
	var issues []Issue

	seen := make(map[string]int)

	for i, line := range lines {
		if line == "" {
			continue
		}

		if prevLine, exists := seen[line]; exists {
			issues = append(issues, Issue{
				Type:        "exact_duplicate",
				Description: fmt.Sprintf("%s: entry %q appears multiple times (lines %d and %d)", file, line, prevLine, i+1),
				File:        file,
				Entry:       line,
				Line:        i + 1,
			})
		} else {
			seen[line] = i + 1
		}
	}

	return issues
}
