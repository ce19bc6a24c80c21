package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/robalyx/stemdata/internal/export"
	"github.com/robalyx/stemdata/internal/export/types"
)

// ErrNoFiles is returned when there is nothing to pack.
var ErrNoFiles = errors.New("no files to pack")

// timestampLayout is the timestamp format used in archive names.
const timestampLayout = "20060102_150405"

// Options configures archive packing.
type Options struct {
	BuildDir string
	DistDir  string
	Prefix   string
	Location *time.Location
}

// Name returns the archive file name for the given time, e.g. STEMDATA_20250101_120000.zip.
func Name(prefix string, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%s_%s.zip", prefix, now.In(loc).Format(timestampLayout))
}

// Files returns the build files that belong in an archive. A build directory with a
// manifest contributes every file it lists plus the manifest itself; otherwise only the
// text files are packed.
func Files(buildDir string) ([]string, error) {
	manifest, err := export.LoadManifest(buildDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return []string{types.FlexionsText, types.InvariantsText}, nil
	}

	return append(manifest.FileNames(), types.ManifestJSON), nil
}

// Pack writes files from the build directory into a new zip archive inside the dist
// directory and returns the archive path. Entries use maximum deflate compression and
// carry the archive timestamp.
func Pack(opts Options, files []string, now time.Time) (string, error) {
	if len(files) == 0 {
		return "", ErrNoFiles
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	if err := os.MkdirAll(opts.DistDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create dist directory: %w", err)
	}

	path := filepath.Join(opts.DistDir, Name(opts.Prefix, now, loc))

	// Write to a temporary file so that a failed run leaves no truncated archive
	tmp, err := os.CreateTemp(opts.DistDir, ".pack-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := writeArchive(tmp, opts.BuildDir, files, now.In(loc)); err != nil {
		return "", err
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close archive: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move archive into place: %w", err)
	}

	return path, nil
}

// writeArchive streams every file into a zip written to w.
func writeArchive(w io.Writer, buildDir string, files []string, modified time.Time) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	for _, name := range files {
		if err := addFile(zw, filepath.Join(buildDir, name), name, modified); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}

	return nil
}

// addFile copies one file into the archive under name.
func addFile(zw *zip.Writer, path, name string, modified time.Time) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	entry, err := zw.CreateHeader(&zip.FileHeader{
		Name:     filepath.ToSlash(name),
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}

	if _, err := io.Copy(entry, file); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}
