package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalyx/stemdata/internal/storage"
	"github.com/urfave/cli/v3"
)

var ErrArchiveRequired = errors.New("archive path is required")

// PublishCommand returns the command that uploads an archive to object storage.
func PublishCommand() *cli.Command {
	return &cli.Command{
		Name:      "publish",
		Usage:     "Upload an archive to the configured S3-compatible storage",
		ArgsUsage: "ARCHIVE",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			archivePath := c.Args().First()
			if archivePath == "" {
				return ErrArchiveRequired
			}

			app, err := initialize("publish", c, nil)
			if err != nil {
				return err
			}
			defer app.Cleanup()

			publisher, err := storage.NewPublisher(&app.Config.Storage, app.Logger)
			if err != nil {
				return err
			}

			upload, err := publisher.Publish(ctx, archivePath)
			if err != nil {
				return err
			}

			fmt.Printf("Published s3://%s/%s (%d bytes)\n", upload.Bucket, upload.Key, upload.Size)

			return nil
		},
	}
}
