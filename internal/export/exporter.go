package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/robalyx/stemdata/internal/aggregate"
	"github.com/robalyx/stemdata/internal/export/binary"
	"github.com/robalyx/stemdata/internal/export/chart"
	"github.com/robalyx/stemdata/internal/export/csv"
	"github.com/robalyx/stemdata/internal/export/sqlite"
	"github.com/robalyx/stemdata/internal/export/text"
	"github.com/robalyx/stemdata/internal/export/types"
	"github.com/robalyx/stemdata/internal/vocabulary"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents a supported export format.
type Format string

const (
	FormatText   Format = "text"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
	FormatBinary Format = "binary"
	FormatChart  Format = "chart"
)

const (
	// EngineVersion represents the version of the export engine.
	// This should be updated when making breaking changes to the output files.
	EngineVersion = "1.0.0"
)

// ParseFormats validates format names. The text format is always written first;
// duplicates are ignored.
func ParseFormats(names []string) ([]Format, error) {
	formats := []Format{FormatText}

	for _, name := range names {
		format := Format(strings.ToLower(strings.TrimSpace(name)))

		switch format {
		case FormatText, FormatCSV, FormatSQLite, FormatBinary, FormatChart:
		case "":
			continue
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
		}

		if !slices.Contains(formats, format) {
			formats = append(formats, format)
		}
	}

	return formats, nil
}

// Settings records the options a vocabulary was built with.
type Settings struct {
	Source           string   `json:"source"`
	Strategy         string   `json:"strategy"`
	MinStemLength    int      `json:"minStemLength"`
	Markers          string   `json:"markers"`
	ClosedTags       []string `json:"closedTags"`
	MinShare         float64  `json:"minShare"`
	ShareBase        string   `json:"shareBase"`
	SuffixRedundancy bool     `json:"suffixRedundancy"`
	Order            string   `json:"order"`
}

// Manifest describes a build directory.
type Manifest struct {
	RunID            string               `json:"runId"`
	EngineVersion    string               `json:"engineVersion"`
	CreatedAt        time.Time            `json:"createdAt"`
	Formats          []Format             `json:"formats"`
	Flexions         int                  `json:"flexions"`
	Invariants       int                  `json:"invariants"`
	TotalOccurrences int                  `json:"totalOccurrences"`
	Stats            aggregate.Stats      `json:"stats"`
	Dropped          vocabulary.DropStats `json:"dropped"`
	Settings         Settings             `json:"settings"`
	Files            []FileChecksum       `json:"files"`
}

// FileNames returns the names of the files listed in the manifest.
func (m *Manifest) FileNames() []string {
	names := make([]string, 0, len(m.Files))
	for _, file := range m.Files {
		names = append(names, file.Name)
	}
	return names
}

// Config holds the configuration for exports.
type Config struct {
	OutDir      string
	Formats     []Format
	ChartTop    int
	RunID       string
	Settings    Settings
	Concurrency int
}

// formatWriter is implemented by every format subpackage.
type formatWriter interface {
	Files() []string
	Export(vocab *vocabulary.Vocabulary) error
}

// Exporter writes a vocabulary in every configured format.
type Exporter struct {
	config *Config
	logger *zap.Logger
	now    func() time.Time
}

// New creates a new exporter instance.
func New(config *Config, logger *zap.Logger) *Exporter {
	if config.RunID == "" {
		config.RunID = uuid.New().String()
	}

	if len(config.Formats) == 0 {
		config.Formats = []Format{FormatText}
	}

	return &Exporter{
		config: config,
		logger: logger.Named("export"),
		now:    time.Now,
	}
}

// ExportAll writes every format concurrently, then the manifest with the checksums
// of all written files. The manifest is written last so that its presence marks a
// complete build directory.
func (e *Exporter) ExportAll(
	ctx context.Context, vocab *vocabulary.Vocabulary, stats aggregate.Stats,
) (*Manifest, error) {
	if err := os.MkdirAll(e.config.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// A stale manifest must not describe a partially rewritten directory
	if err := types.RemoveExisting(e.config.OutDir, types.ManifestJSON); err != nil {
		return nil, err
	}

	writers := make(map[Format]formatWriter, len(e.config.Formats))
	for _, format := range e.config.Formats {
		writer, err := e.writer(format)
		if err != nil {
			return nil, err
		}
		writers[format] = writer
	}

	e.logger.Info("Exporting vocabulary",
		zap.String("outDir", e.config.OutDir),
		zap.Int("formats", len(writers)),
		zap.Int("flexions", len(vocab.Flexions)),
		zap.Int("invariants", len(vocab.Invariants)))

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range e.config.Formats {
		writer := writers[format]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			if err := writer.Export(vocab); err != nil {
				return fmt.Errorf("failed to export %s format: %w", format, err)
			}

			e.logger.Debug("Wrote format",
				zap.String("format", string(format)),
				zap.Strings("files", writer.Files()),
				zap.Duration("duration", time.Since(start)))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var names []string
	for _, format := range e.config.Formats {
		names = append(names, writers[format].Files()...)
	}

	checksums, err := checksumFiles(ctx, e.config.OutDir, names, e.config.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum output files: %w", err)
	}

	manifest := &Manifest{
		RunID:            e.config.RunID,
		EngineVersion:    EngineVersion,
		CreatedAt:        e.now().UTC(),
		Formats:          e.config.Formats,
		Flexions:         len(vocab.Flexions),
		Invariants:       len(vocab.Invariants),
		TotalOccurrences: vocab.TotalCount,
		Stats:            stats,
		Dropped:          vocab.Dropped,
		Settings:         e.config.Settings,
		Files:            checksums,
	}

	if err := WriteManifest(e.config.OutDir, manifest); err != nil {
		return nil, err
	}

	e.logger.Info("Export completed",
		zap.String("runID", manifest.RunID),
		zap.Int("files", len(manifest.Files)))

	return manifest, nil
}

// writer returns the format writer for format.
func (e *Exporter) writer(format Format) (formatWriter, error) {
	switch format {
	case FormatText:
		return text.New(e.config.OutDir), nil
	case FormatCSV:
		return csv.New(e.config.OutDir), nil
	case FormatSQLite:
		return sqlite.New(e.config.OutDir), nil
	case FormatBinary:
		return binary.New(e.config.OutDir), nil
	case FormatChart:
		return chart.New(e.config.OutDir, e.config.ChartTop), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// WriteManifest saves the manifest as indented JSON in dir.
func WriteManifest(dir string, manifest *Manifest) error {
	data, err := sonic.MarshalIndent(manifest, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, types.ManifestJSON), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// LoadManifest reads the manifest of a build directory.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, types.ManifestJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := sonic.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &manifest, nil
}
