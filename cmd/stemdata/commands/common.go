package commands

import (
	"fmt"

	"github.com/robalyx/stemdata/internal/setup"
	"github.com/robalyx/stemdata/internal/setup/config"
	"github.com/urfave/cli/v3"
)

// configFlag is shared by every command.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the config file (searched in the default locations when empty)",
	}
}

// outFlag selects the build directory.
func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Build directory (overrides output.build_dir)",
	}
}

// distFlag selects the archive directory.
func distFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "dist",
		Usage: "Archive directory (overrides archive.dist_dir)",
	}
}

// initialize loads the config, applies the flag overrides and creates the logger.
func initialize(command string, c *cli.Command, override func(*config.Config) error) (*setup.App, error) {
	app, err := setup.InitializeApp(command, c.String("config"), func(cfg *config.Config) error {
		if c.IsSet("out") {
			cfg.Output.BuildDir = c.String("out")
		}
		if c.IsSet("dist") {
			cfg.Archive.DistDir = c.String("dist")
		}

		if override != nil {
			return override(cfg)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return app, nil
}
