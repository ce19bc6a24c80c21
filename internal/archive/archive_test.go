package archive_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/robalyx/stemdata/internal/archive"
	"github.com/robalyx/stemdata/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	t.Parallel()

	minsk, err := time.LoadLocation("Europe/Minsk")
	require.NoError(t, err)

	now := time.Date(2025, 3, 9, 21, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		prefix string
		loc    *time.Location
		want   string
	}{
		{name: "minsk", prefix: "STEMDATA", loc: minsk, want: "STEMDATA_20250310_000405.zip"},
		{name: "utc", prefix: "STEMDATA", loc: time.UTC, want: "STEMDATA_20250309_210405.zip"},
		{name: "nil location", prefix: "words", loc: nil, want: "words_20250309_210405.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, archive.Name(tt.prefix, now, tt.loc))
		})
	}
}

func writeBuildFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	contents := make(map[string]string, len(reader.File))
	for _, file := range reader.File {
		assert.Equal(t, zip.Deflate, file.Method)

		rc, err := file.Open()
		require.NoError(t, err)

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		contents[file.Name] = string(data)
	}

	return contents
}

func TestPack(t *testing.T) {
	t.Parallel()

	buildDir := t.TempDir()
	distDir := filepath.Join(t.TempDir(), "dist")

	writeBuildFiles(t, buildDir, map[string]string{
		"flexions.txt":           "а\nы\n",
		"unchangeable_words.txt": "і\nна\n",
	})

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	path, err := archive.Pack(archive.Options{
		BuildDir: buildDir,
		DistDir:  distDir,
		Prefix:   "STEMDATA",
	}, []string{"flexions.txt", "unchangeable_words.txt"}, now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(distDir, "STEMDATA_20250102_030405.zip"), path)
	assert.Equal(t, map[string]string{
		"flexions.txt":           "а\nы\n",
		"unchangeable_words.txt": "і\nна\n",
	}, readArchive(t, path))

	// No temporary files are left behind
	entries, err := os.ReadDir(distDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPackErrors(t *testing.T) {
	t.Parallel()

	t.Run("no files", func(t *testing.T) {
		t.Parallel()

		_, err := archive.Pack(archive.Options{BuildDir: t.TempDir(), DistDir: t.TempDir()}, nil, time.Now())
		require.ErrorIs(t, err, archive.ErrNoFiles)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		distDir := t.TempDir()
		_, err := archive.Pack(archive.Options{
			BuildDir: t.TempDir(),
			DistDir:  distDir,
			Prefix:   "STEMDATA",
		}, []string{"flexions.txt"}, time.Now())
		require.Error(t, err)

		entries, err := os.ReadDir(distDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestFiles(t *testing.T) {
	t.Parallel()

	t.Run("without manifest", func(t *testing.T) {
		t.Parallel()

		files, err := archive.Files(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, []string{"flexions.txt", "unchangeable_words.txt"}, files)
	})

	t.Run("with manifest", func(t *testing.T) {
		t.Parallel()

		buildDir := t.TempDir()
		require.NoError(t, export.WriteManifest(buildDir, &export.Manifest{
			RunID: "run",
			Files: []export.FileChecksum{
				{Name: "flexions.txt"},
				{Name: "unchangeable_words.txt"},
				{Name: "stemdata.db"},
			},
		}))

		files, err := archive.Files(buildDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"flexions.txt", "unchangeable_words.txt", "stemdata.db", "manifest.json"}, files)
	})
}
