package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robalyx/stemdata/internal/dictionary"
	"github.com/robalyx/stemdata/internal/flexion"
	"github.com/robalyx/stemdata/pkg/utils"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Options configures an Aggregator.
type Options struct {
	Workers      int
	ClosedTags   []string
	Markers      string
	Replacements map[string]string
}

// Aggregator walks a dictionary and folds every paradigm into an Accumulator.
type Aggregator struct {
	extractor *flexion.Extractor
	opts      Options
	logger    *zap.Logger
}

// New creates a new Aggregator.
func New(extractor *flexion.Extractor, opts Options, logger *zap.Logger) *Aggregator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Aggregator{
		extractor: extractor,
		opts:      opts,
		logger:    logger.Named("aggregate"),
	}
}

// Run aggregates every file of the source. Files are processed sequentially unless
// more than one worker is configured, in which case each file is folded into its own
// accumulator and merged once it completes. The first fatal error cancels the run.
func (a *Aggregator) Run(ctx context.Context, source dictionary.Source) (*Accumulator, error) {
	files, err := source.Files()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	a.logger.Info("Starting aggregation",
		zap.Int("files", len(files)),
		zap.Int("workers", a.opts.Workers))

	var result *Accumulator
	if a.opts.Workers == 1 || len(files) == 1 {
		result, err = a.runSequential(ctx, source, files)
	} else {
		result, err = a.runParallel(ctx, source, files)
	}

	if err != nil {
		return nil, err
	}

	stats := result.Stats()
	a.logger.Info("Aggregation completed",
		zap.Int("files", stats.Files),
		zap.Int("paradigms", stats.Paradigms),
		zap.Int("variants", stats.Variants),
		zap.Int("inflecting", stats.InflectingVariants),
		zap.Int("invariant", stats.InvariantVariants),
		zap.Int("compound", stats.CompoundVariants),
		zap.Int("malformed", stats.MalformedRecords),
		zap.Int("uniqueFlexions", len(result.flexions)),
		zap.Int("uniqueInvariants", len(result.invariants)),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

func (a *Aggregator) runSequential(ctx context.Context, source dictionary.Source, files []string) (*Accumulator, error) {
	acc := NewAccumulator()
	classifier := a.newClassifier()

	for _, file := range files {
		if err := a.processFile(ctx, source, file, classifier, acc); err != nil {
			return nil, err
		}
	}

	return acc, nil
}

func (a *Aggregator) runParallel(ctx context.Context, source dictionary.Source, files []string) (*Accumulator, error) {
	var (
		result = NewAccumulator()
		mu     sync.Mutex
		p      = pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(a.opts.Workers)
	)

	for _, file := range files {
		p.Go(func(ctx context.Context) error {
			acc := NewAccumulator()
			if err := a.processFile(ctx, source, file, a.newClassifier(), acc); err != nil {
				return err
			}

			mu.Lock()
			result.Merge(acc)
			mu.Unlock()

			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// processFile streams one file into acc.
func (a *Aggregator) processFile(
	ctx context.Context, source dictionary.Source, file string, classifier *Classifier, acc *Accumulator,
) error {
	a.logger.Info("Processing dictionary file", zap.String("file", file))

	err := source.Walk(ctx, file, func(paradigm *dictionary.Paradigm) error {
		Fold(acc, classifier, a.extractor, paradigm, a.logger)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", file, err)
	}

	acc.stats.Files++

	return nil
}

// newClassifier creates a classifier with its own normalizer for a single worker.
func (a *Aggregator) newClassifier() *Classifier {
	return NewClassifier(utils.NewFormNormalizer(a.opts.Markers, a.opts.Replacements), a.opts.ClosedTags)
}

// Fold applies the routing rules to every variant of a paradigm and records the
// results in acc. Malformed records are counted and skipped.
func Fold(acc *Accumulator, classifier *Classifier, extractor *flexion.Extractor, paradigm *dictionary.Paradigm, logger *zap.Logger) {
	acc.stats.Paradigms++

	if len(paradigm.Variants) == 0 {
		acc.stats.MalformedRecords++
		logger.Debug("Skipping paradigm without variants", zap.String("paradigm", paradigm.ID))
		return
	}

	for i := range paradigm.Variants {
		variant := &paradigm.Variants[i]
		acc.stats.Variants++

		classification, err := classifier.Classify(paradigm, variant)
		if err != nil {
			acc.stats.MalformedRecords++
			logger.Debug("Skipping malformed record",
				zap.String("paradigm", paradigm.ID),
				zap.String("variant", variant.ID),
				zap.Error(err))
			continue
		}

		switch classification.Route {
		case RouteCompound:
			acc.stats.CompoundVariants++
		case RouteInvariant:
			acc.stats.InvariantVariants++
			for _, word := range classification.Words {
				acc.AddInvariant(word)
			}
		case RouteInflecting:
			acc.stats.InflectingVariants++
			for _, suffix := range extractor.Extract(classification.Words) {
				acc.AddFlexion(suffix)
			}
		}
	}
}
