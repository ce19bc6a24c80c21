package vocabcheck

import (
	"fmt"
	"strings"

	"github.com/robalyx/stemdata/internal/export/types"
	"github.com/robalyx/stemdata/pkg/utils"
)

// LineValidator handles blank and whitespace entry validation.
type LineValidator struct{}

// NewLineValidator creates a new LineValidator instance.
func NewLineValidator() *LineValidator {
	return &LineValidator{}
}

// Validate checks every line of both files.
func (v *LineValidator) Validate(lists *Lists) []Issue {
	var issues []Issue

	issues = append(issues, v.checkLines(types.FlexionsText, lists.Flexions)...)
	issues = append(issues, v.checkLines(types.InvariantsText, lists.Invariants)...)

	if len(lists.Flexions) == 0 {
		issues = append(issues, Issue{
			Type:        "empty_list",
			Description: types.FlexionsText + " contains no flexions",
			File:        types.FlexionsText,
			Severity:    SeverityInfo,
		})
	}

	return issues
}

// checkLines finds blank lines and entries containing whitespace.
func (v *LineValidator) checkLines(file string, lines []string) []Issue {
	var issues []Issue

	for i, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			issues = append(issues, Issue{
				Type:        "blank_line",
				Description: fmt.Sprintf("%s:%d is blank", file, i+1),
				File:        file,
				Line:        i + 1,
			})
		case utils.ContainsWhitespace(line):
			issues = append(issues, Issue{
				Type:        "whitespace_entry",
				Description: fmt.Sprintf("%s:%d entry %q contains whitespace", file, i+1, line),
				File:        file,
				Entry:       line,
				Line:        i + 1,
			})
		}
	}

	return issues
}
