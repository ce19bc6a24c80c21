package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/stemdata/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantSum  string
		wantSize int64
	}{
		{
			name:     "empty file",
			content:  "",
			wantSum:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			wantSize: 0,
		},
		{
			name:     "single line",
			content:  "hello\n",
			wantSum:  "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03",
			wantSize: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "file.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			sum, size, err := export.ChecksumFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSum, sum)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestChecksumFileMissing(t *testing.T) {
	t.Parallel()

	_, _, err := export.ChecksumFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
