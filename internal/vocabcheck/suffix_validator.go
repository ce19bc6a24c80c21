package vocabcheck

import (
	"fmt"
	"unicode/utf8"

	"github.com/robalyx/stemdata/internal/export/types"
)

// SuffixValidator reports flexions that are a proper suffix of another flexion.
// Such entries are normal for a vocabulary built without suffix redundancy, so they
// only fail the check in strict mode.
type SuffixValidator struct {
	strict bool
}

// NewSuffixValidator creates a new SuffixValidator instance.
func NewSuffixValidator(strict bool) *SuffixValidator {
	return &SuffixValidator{strict: strict}
}

// Validate performs suffix redundancy validation.
func (v *SuffixValidator) Validate(lists *Lists) []Issue {
	severity := SeverityInfo
	if v.strict {
		severity = SeverityError
	}

	lineOf := make(map[string]int, len(lists.Flexions))
	for i, flexion := range lists.Flexions {
		if _, exists := lineOf[flexion]; !exists && flexion != "" {
			lineOf[flexion] = i + 1
		}
	}

	// The first longer flexion that contains each suffix
	containedIn := make(map[string]string)
	for _, flexion := range lists.Flexions {
		for i := range flexion {
			if i == 0 {
				continue
			}

			suffix := flexion[i:]
			if _, listed := lineOf[suffix]; !listed {
				continue
			}
			if _, found := containedIn[suffix]; !found {
				containedIn[suffix] = flexion
			}
		}
	}

	var issues []Issue
	for _, flexion := range lists.Flexions {
		longer, found := containedIn[flexion]
		if !found || lineOf[flexion] == 0 {
			continue
		}

		issues = append(issues, Issue{
			Type: "suffix_redundancy",
			Description: fmt.Sprintf("%s:%d flexion %q (%d runes) is a suffix of %q",
				types.FlexionsText, lineOf[flexion], flexion, utf8.RuneCountInString(flexion), longer),
			File:     types.FlexionsText,
			Entry:    flexion,
			Line:     lineOf[flexion],
			Severity: severity,
		})

		// Report each flexion once
		delete(containedIn, flexion)
	}

	return issues
}
