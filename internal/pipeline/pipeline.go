package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/robalyx/stemdata/internal/aggregate"
	"github.com/robalyx/stemdata/internal/archive"
	"github.com/robalyx/stemdata/internal/dictionary"
	"github.com/robalyx/stemdata/internal/export"
	"github.com/robalyx/stemdata/internal/export/types"
	"github.com/robalyx/stemdata/internal/flexion"
	"github.com/robalyx/stemdata/internal/setup/config"
	"github.com/robalyx/stemdata/internal/vocabulary"
	"go.uber.org/zap"
)

// Result summarizes a completed build.
type Result struct {
	RunID       string
	Stats       aggregate.Stats
	Vocabulary  *vocabulary.Vocabulary
	Manifest    *export.Manifest
	BuildDir    string
	ArchivePath string
	Duration    time.Duration
}

// Pipeline turns a dictionary directory into the flexion vocabulary files.
type Pipeline struct {
	config *config.Config
	runID  string
	logger *zap.Logger
	now    func() time.Time
}

// New creates a new pipeline. The run id is recorded in the manifest; an empty id
// lets the exporter generate one.
func New(cfg *config.Config, runID string, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		config: cfg,
		runID:  runID,
		logger: logger.Named("pipeline"),
		now:    time.Now,
	}
}

// Run executes the build. Every setting is validated before the dictionary is read
// and nothing is written unless aggregation and filtering succeed.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := p.now()
	cfg := p.config

	// Validate settings first
	exceptions, err := config.LoadExceptions(cfg.Filter.ExceptionsPath)
	if err != nil {
		return nil, err
	}

	filter, err := vocabulary.NewFilter(FilterOptions(cfg, exceptions), p.logger)
	if err != nil {
		return nil, err
	}

	extractor, err := flexion.NewExtractor(flexion.Strategy(cfg.Extractor.Strategy), cfg.Extractor.MinStemLength)
	if err != nil {
		return nil, err
	}

	formats, err := export.ParseFormats(cfg.Output.Formats)
	if err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(cfg.Archive.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: archive timezone: %w", config.ErrInvalidConfig, err)
	}

	// Aggregate the dictionary
	source := dictionary.NewXMLSource(cfg.Source.Dir, cfg.Source.Pattern)
	aggregator := aggregate.New(extractor, aggregate.Options{
		Workers:      cfg.Source.Workers,
		ClosedTags:   cfg.Classify.ClosedTags,
		Markers:      cfg.Normalize.Markers,
		Replacements: cfg.Normalize.Replacements,
	}, p.logger)

	acc, err := aggregator.Run(ctx, source)
	if err != nil {
		return nil, err
	}

	vocab, err := filter.Build(acc)
	if err != nil {
		return nil, err
	}

	// Write the output files
	exporter := export.New(&export.Config{
		OutDir:      cfg.Output.BuildDir,
		Formats:     formats,
		ChartTop:    cfg.Output.ChartTop,
		RunID:       p.runID,
		Settings:    settings(cfg),
		Concurrency: cfg.Source.Workers,
	}, p.logger)

	manifest, err := exporter.ExportAll(ctx, vocab, acc.Stats())
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:      manifest.RunID,
		Stats:      acc.Stats(),
		Vocabulary: vocab,
		Manifest:   manifest,
		BuildDir:   cfg.Output.BuildDir,
	}

	if cfg.Archive.Enabled {
		result.ArchivePath, err = archive.Pack(archive.Options{
			BuildDir: cfg.Output.BuildDir,
			DistDir:  cfg.Archive.DistDir,
			Prefix:   cfg.Archive.Prefix,
			Location: location,
		}, append(manifest.FileNames(), types.ManifestJSON), p.now())
		if err != nil {
			return nil, fmt.Errorf("failed to pack build: %w", err)
		}

		p.logger.Info("Packed build", zap.String("archive", result.ArchivePath))
	}

	result.Duration = p.now().Sub(start)

	p.logger.Info("Build completed",
		zap.String("runID", result.RunID),
		zap.Int("flexions", len(vocab.Flexions)),
		zap.Int("invariants", len(vocab.Invariants)),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// FilterOptions maps the configuration and curated exceptions to vocabulary options.
func FilterOptions(cfg *config.Config, exceptions *config.Exceptions) vocabulary.Options {
	opts := vocabulary.Options{
		MinShare:         cfg.Filter.MinShare,
		ShareBase:        vocabulary.ShareBase(cfg.Filter.ShareBase),
		SuffixRedundancy: cfg.Filter.SuffixRedundancy,
		Order:            vocabulary.Order(cfg.Rank.Order),
	}

	if exceptions != nil {
		opts.ExtraInvariants = exceptions.Invariants
		opts.ExcludeFlexions = exceptions.ExcludeFlexions
		opts.ExcludeInvariants = exceptions.ExcludeInvariants
	}

	return opts
}

// settings records the build options in the manifest.
func settings(cfg *config.Config) export.Settings {
	return export.Settings{
		Source:           cfg.Source.Dir,
		Strategy:         cfg.Extractor.Strategy,
		MinStemLength:    cfg.Extractor.MinStemLength,
		Markers:          cfg.Normalize.Markers,
		ClosedTags:       cfg.Classify.ClosedTags,
		MinShare:         cfg.Filter.MinShare,
		ShareBase:        cfg.Filter.ShareBase,
		SuffixRedundancy: cfg.Filter.SuffixRedundancy,
		Order:            cfg.Rank.Order,
	}
}
