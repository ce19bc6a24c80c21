package vocabcheck_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/stemdata/internal/vocabcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issueTypes returns the type of every issue in order.
func issueTypes(issues []vocabcheck.Issue) []string {
	types := make([]string, 0, len(issues))
	for _, issue := range issues {
		types = append(types, issue.Type)
	}
	return types
}

func TestLineValidator(t *testing.T) {
	t.Parallel()

	lists := &vocabcheck.Lists{
		Flexions:   []string{"а", "", "а мі", "ы"},
		Invariants: []string{"і", " ", "на\t"},
	}

	issues := vocabcheck.NewLineValidator().Validate(lists)
	require.Len(t, issues, 4)

	assert.Equal(t, []string{"blank_line", "whitespace_entry", "blank_line", "whitespace_entry"}, issueTypes(issues))
	assert.Equal(t, 2, issues[0].Line)
	assert.Equal(t, "flexions.txt", issues[0].File)
	assert.Equal(t, "а мі", issues[1].Entry)
	assert.Equal(t, "unchangeable_words.txt", issues[3].File)
	assert.Equal(t, 3, issues[3].Line)
}

func TestLineValidatorEmptyFlexions(t *testing.T) {
	t.Parallel()

	issues := vocabcheck.NewLineValidator().Validate(&vocabcheck.Lists{})
	require.Len(t, issues, 1)
	assert.Equal(t, "empty_list", issues[0].Type)
	assert.Equal(t, vocabcheck.SeverityInfo, issues[0].Severity)
}

func TestDuplicateValidator(t *testing.T) {
	t.Parallel()

	lists := &vocabcheck.Lists{
		Flexions:   []string{"а", "ы", "а", "а"},
		Invariants: []string{"і", "на", "на"},
	}

	issues := vocabcheck.NewDuplicateValidator().Validate(lists)
	require.Len(t, issues, 3)

	assert.Equal(t, "а", issues[0].Entry)
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, 4, issues[1].Line)
	assert.Equal(t, "на", issues[2].Entry)
	assert.Equal(t, "unchangeable_words.txt", issues[2].File)
}

func TestOrderValidator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		invariants []string
		wantLines  []int
	}{
		{
			name:       "sorted",
			invariants: []string{"і", "на", "не", "метро"},
		},
		{
			name:       "longer before shorter",
			invariants: []string{"метро", "на"},
			wantLines:  []int{2},
		},
		{
			name:       "lexicographic within length",
			invariants: []string{"і", "не", "на", "кафэ"},
			wantLines:  []int{3},
		},
		{
			name:       "rune length not byte length",
			invariants: []string{"ab", "на"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			issues := vocabcheck.NewOrderValidator().Validate(&vocabcheck.Lists{Invariants: tt.invariants})

			var lines []int
			for _, issue := range issues {
				lines = append(lines, issue.Line)
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestSuffixValidator(t *testing.T) {
	t.Parallel()

	lists := &vocabcheck.Lists{Flexions: []string{"а", "ая", "я", "ога", "га", "ы"}}

	t.Run("informational", func(t *testing.T) {
		t.Parallel()

		issues := vocabcheck.NewSuffixValidator(false).Validate(lists)
		require.Len(t, issues, 3)

		entries := make([]string, 0, len(issues))
		for _, issue := range issues {
			entries = append(entries, issue.Entry)
			assert.Equal(t, vocabcheck.SeverityInfo, issue.Severity)
		}
		assert.Equal(t, []string{"а", "я", "га"}, entries)
		assert.Equal(t, 5, issues[2].Line)
	})

	t.Run("strict", func(t *testing.T) {
		t.Parallel()

		issues := vocabcheck.NewSuffixValidator(true).Validate(lists)
		require.Len(t, issues, 3)
		assert.Len(t, vocabcheck.Errors(issues), 3)
	})
}

func writeBuild(t *testing.T, flexions, invariants string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flexions.txt"), []byte(flexions), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unchangeable_words.txt"), []byte(invariants), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := writeBuild(t, "а\nы\n\nу\n", "")

	lists, err := vocabcheck.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, lists.Dir)
	assert.Equal(t, []string{"а", "ы", "", "у"}, lists.Flexions)
	assert.Empty(t, lists.Invariants)

	_, err = vocabcheck.Load(t.TempDir())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("clean build", func(t *testing.T) {
		t.Parallel()

		lists, err := vocabcheck.Load(writeBuild(t, "а\nы\nамі\n", "і\nна\nметро\n"))
		require.NoError(t, err)

		assert.Empty(t, vocabcheck.Validate(lists, true))
	})

	t.Run("suffixes pass unless strict", func(t *testing.T) {
		t.Parallel()

		lists, err := vocabcheck.Load(writeBuild(t, "ая\nя\n", "і\n"))
		require.NoError(t, err)

		issues := vocabcheck.Validate(lists, false)
		assert.Len(t, issues, 1)
		assert.Empty(t, vocabcheck.Errors(issues))
		assert.Len(t, vocabcheck.Errors(vocabcheck.Validate(lists, true)), 1)
	})

	t.Run("manifest checksum mismatch", func(t *testing.T) {
		t.Parallel()

		dir := writeBuild(t, "а\n", "і\n")
		manifest := `{"runId": "run", "files": [
			{"name": "flexions.txt", "size": 3, "sha256": "0000"},
			{"name": "stemdata.db", "size": 1, "sha256": "0000"}
		]}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifest), 0o644))

		lists, err := vocabcheck.Load(dir)
		require.NoError(t, err)

		issues := vocabcheck.Errors(vocabcheck.Validate(lists, false))
		assert.Equal(t, []string{"checksum_mismatch", "missing_file"}, issueTypes(issues))
	})
}
