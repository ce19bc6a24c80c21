package commands

import (
	"context"
	"fmt"

	"github.com/robalyx/stemdata/internal/pipeline"
	"github.com/robalyx/stemdata/internal/setup/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// BuildCommand returns the command that builds the vocabulary.
func BuildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build the flexion and invariant word lists",
		Description: `Read every dictionary file, extract flexions and invariant words,
filter and rank them, and write the configured output formats.

Examples:
  stemdata build --source grammardb                     # Build with defaults
  stemdata build --min-share 0.0001 --share-base total  # Drop rare flexions
  stemdata build --formats csv,sqlite --no-archive      # Extra formats, no zip`,
		Flags: []cli.Flag{
			configFlag(),
			outFlag(),
			distFlag(),
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Directory containing the dictionary XML files",
			},
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "Glob pattern of dictionary files inside the source directory",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Number of dictionary files processed concurrently",
			},
			&cli.FloatFlag{
				Name:  "min-share",
				Usage: "Minimum share a flexion must reach to be kept (0 keeps all)",
			},
			&cli.StringFlag{
				Name:  "share-base",
				Usage: "Denominator of the share: max or total",
			},
			&cli.BoolFlag{
				Name:  "suffix-redundancy",
				Usage: "Drop flexions that are a suffix of another kept flexion",
			},
			&cli.StringFlag{
				Name:  "order",
				Usage: "Flexion order: frequency or length",
			},
			&cli.StringSliceFlag{
				Name:  "formats",
				Usage: "Extra output formats: csv, sqlite, binary, chart",
			},
			&cli.BoolFlag{
				Name:  "no-archive",
				Usage: "Skip packing the build directory",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := initialize("build", c, func(cfg *config.Config) error {
				applyBuildFlags(c, cfg)
				return nil
			})
			if err != nil {
				return err
			}
			defer app.Cleanup()

			result, err := pipeline.New(app.Config, app.LogManager.GetInstanceID(), app.Logger).Run(ctx)
			if err != nil {
				app.Logger.Error("Build failed", zap.Error(err))
				return err
			}

			fmt.Printf("Built %d flexions and %d invariant words in %s\n",
				len(result.Vocabulary.Flexions), len(result.Vocabulary.Invariants), result.BuildDir)
			if result.ArchivePath != "" {
				fmt.Printf("Archive: %s\n", result.ArchivePath)
			}

			return nil
		},
	}
}

// applyBuildFlags copies the flags that were set onto the config.
func applyBuildFlags(c *cli.Command, cfg *config.Config) {
	if c.IsSet("source") {
		cfg.Source.Dir = c.String("source")
	}
	if c.IsSet("pattern") {
		cfg.Source.Pattern = c.String("pattern")
	}
	if c.IsSet("workers") {
		cfg.Source.Workers = int(c.Int("workers"))
	}
	if c.IsSet("min-share") {
		cfg.Filter.MinShare = c.Float("min-share")
	}
	if c.IsSet("share-base") {
		cfg.Filter.ShareBase = c.String("share-base")
	}
	if c.IsSet("suffix-redundancy") {
		cfg.Filter.SuffixRedundancy = c.Bool("suffix-redundancy")
	}
	if c.IsSet("order") {
		cfg.Rank.Order = c.String("order")
	}
	if c.IsSet("formats") {
		cfg.Output.Formats = c.StringSlice("formats")
	}
	if c.Bool("no-archive") {
		cfg.Archive.Enabled = false
	}
}
