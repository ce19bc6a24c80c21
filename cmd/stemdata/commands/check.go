package commands

import (
	"context"
	"fmt"

	"github.com/robalyx/stemdata/internal/vocabcheck"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// CheckCommand returns the command that validates a build directory.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Check the produced word lists for errors",
		Description: `Check the build directory for actual errors:
- Blank lines
- Entries containing whitespace
- Exact duplicate entries
- Invariant words out of order (shortest first, then alphabetical)
- Files that do not match the manifest checksums
- Flexions that are a suffix of another flexion (error only with --strict)

Returns exit code 1 if errors found, 0 if clean.`,
		Flags: []cli.Flag{
			configFlag(),
			outFlag(),
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat suffix redundancy as an error",
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			app, err := initialize("check", c, nil)
			if err != nil {
				return err
			}
			defer app.Cleanup()

			lists, err := vocabcheck.Load(app.Config.Output.BuildDir)
			if err != nil {
				return err
			}

			issues := vocabcheck.Validate(lists, c.Bool("strict"))
			errs := vocabcheck.Errors(issues)

			app.Logger.Info("Checked build",
				zap.String("buildDir", app.Config.Output.BuildDir),
				zap.Int("issues", len(issues)),
				zap.Int("errors", len(errs)))

			for _, issue := range issues {
				if issue.Severity == vocabcheck.SeverityInfo {
					fmt.Printf("ℹ️  %s\n", issue.Description)
				}
			}

			if len(errs) > 0 {
				fmt.Printf("❌ Found %d error(s):\n\n", len(errs))
				for _, issue := range errs {
					fmt.Printf("• %s\n", issue.Description)
				}
				return cli.Exit("", 1)
			}

			fmt.Println("✅ No errors found")
			return nil
		},
	}
}
