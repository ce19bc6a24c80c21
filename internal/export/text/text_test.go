package text_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/stemdata/internal/export/text"
	"github.com/robalyx/stemdata/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		vocab          *vocabulary.Vocabulary
		wantFlexions   string
		wantInvariants string
	}{
		{
			name: "basic export",
			vocab: &vocabulary.Vocabulary{
				Flexions:   []vocabulary.Entry{{Value: "а", Count: 5}, {Value: "амі", Count: 2}, {Value: "ы", Count: 2}},
				Invariants: []string{"і", "на", "метро"},
			},
			wantFlexions:   "а\nамі\nы\n",
			wantInvariants: "і\nна\nметро\n",
		},
		{
			name:  "empty vocabulary",
			vocab: &vocabulary.Vocabulary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tempDir := t.TempDir()

			require.NoError(t, text.New(tempDir).Export(tt.vocab))

			flexions, err := os.ReadFile(filepath.Join(tempDir, "flexions.txt"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlexions, string(flexions))

			invariants, err := os.ReadFile(filepath.Join(tempDir, "unchangeable_words.txt"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantInvariants, string(invariants))
		})
	}
}

func TestExporter_MissingDirectory(t *testing.T) {
	t.Parallel()

	err := text.New(filepath.Join(t.TempDir(), "missing")).Export(&vocabulary.Vocabulary{})
	require.Error(t, err)
}
