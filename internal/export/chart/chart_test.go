package chart_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/stemdata/internal/export/chart"
	"github.com/robalyx/stemdata/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		top   int
		vocab *vocabulary.Vocabulary
	}{
		{
			name: "several flexions",
			top:  2,
			vocab: &vocabulary.Vocabulary{
				Flexions: []vocabulary.Entry{{Value: "а", Count: 90}, {Value: "ы", Count: 40}, {Value: "у", Count: 10}},
			},
		},
		{
			name:  "single flexion",
			top:   30,
			vocab: &vocabulary.Vocabulary{Flexions: []vocabulary.Entry{{Value: "а", Count: 1}}},
		},
		{
			name:  "empty vocabulary",
			top:   30,
			vocab: &vocabulary.Vocabulary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tempDir := t.TempDir()

			e := chart.New(tempDir, tt.top)
			require.NoError(t, e.Export(tt.vocab))

			data, err := os.ReadFile(filepath.Join(tempDir, "flexions.png"))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, pngSignature))
		})
	}
}
