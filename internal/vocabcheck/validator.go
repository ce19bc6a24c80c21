package vocabcheck

// Validate performs all checks on the loaded lists. Suffix redundancy only counts as
// an error in strict mode.
func Validate(lists *Lists, strict bool) []Issue {
	validators := []Validator{
		NewLineValidator(),
		NewDuplicateValidator(),
		NewOrderValidator(),
		NewSuffixValidator(strict),
		NewManifestValidator(),
	}

	var issues []Issue
	for _, validator := range validators {
		issues = append(issues, validator.Validate(lists)...)
	}

	return issues
}

// Errors returns the issues that fail the check.
func Errors(issues []Issue) []Issue {
	var errs []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}
