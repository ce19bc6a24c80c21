package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/robalyx/stemdata/internal/pipeline"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// PackCommand returns the command that archives an existing build directory.
func PackCommand() *cli.Command {
	return &cli.Command{
		Name:  "pack",
		Usage: "Archive an existing build directory",
		Flags: []cli.Flag{
			configFlag(),
			outFlag(),
			distFlag(),
		},
		Action: func(_ context.Context, c *cli.Command) error {
			app, err := initialize("pack", c, nil)
			if err != nil {
				return err
			}
			defer app.Cleanup()

			path, err := pipeline.Pack(app.Config, time.Now())
			if err != nil {
				return fmt.Errorf("failed to pack build: %w", err)
			}

			app.Logger.Info("Packed build",
				zap.String("buildDir", app.Config.Output.BuildDir),
				zap.String("archive", path))
			fmt.Println(path)

			return nil
		},
	}
}
