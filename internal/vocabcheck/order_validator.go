package vocabcheck

import (
	"fmt"
	"unicode/utf8"

	"github.com/robalyx/stemdata/internal/export/types"
)

// OrderValidator checks that invariant words are ranked shortest first.
type OrderValidator struct{}

// NewOrderValidator creates a new OrderValidator instance.
func NewOrderValidator() *OrderValidator {
	return &OrderValidator{}
}

// Validate reports every invariant word that sorts before its predecessor.
func (v *OrderValidator) Validate(lists *Lists) []Issue {
	var issues []Issue

	for i := 1; i < len(lists.Invariants); i++ {
		prev, cur := lists.Invariants[i-1], lists.Invariants[i]
		if !outOfOrder(prev, cur) {
			continue
		}

		issues = append(issues, Issue{
			Type: "invariant_order",
			Description: fmt.Sprintf("%s:%d entry %q should come before %q",
				types.InvariantsText, i+1, cur, prev),
			File:  types.InvariantsText,
			Entry: cur,
			Line:  i + 1,
		})
	}

	return issues
}

// outOfOrder reports whether b must sort before a by rune length, then lexicographically.
func outOfOrder(a, b string) bool {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la != lb {
		return lb < la
	}
	return b < a
}
