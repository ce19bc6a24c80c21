package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// FileChecksum is the SHA-256 digest of a written file.
type FileChecksum struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// ChecksumFile returns the hex SHA-256 digest and size of a file.
func ChecksumFile(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	h := sha256.New()

	size, err := io.Copy(h, file)
	if err != nil {
		return "", 0, fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), size, nil
}

// checksumFiles hashes files inside dir concurrently. Results keep the order of names.
func checksumFiles(ctx context.Context, dir string, names []string, concurrency int) ([]FileChecksum, error) {
	checksums := make([]FileChecksum, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			sum, size, err := ChecksumFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}

			checksums[i] = FileChecksum{Name: name, Size: size, SHA256: sum}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return checksums, nil
}
