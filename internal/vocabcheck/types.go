package vocabcheck

// Severity tells whether an issue fails the check.
type Severity int

const (
	// SeverityError fails the check.
	SeverityError Severity = iota
	// SeverityInfo is reported but does not fail the check.
	SeverityInfo
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	if s == SeverityInfo {
		return "info"
	}
	return "error"
}

// Issue represents a problem found in the produced files.
type Issue struct {
	Type        string
	Description string
	File        string
	Entry       string
	Line        int // 1-based, 0 when the issue concerns the whole file
	Severity    Severity
}

// Validator defines the interface for all output validators.
type Validator interface {
	Validate(lists *Lists) []Issue
}
