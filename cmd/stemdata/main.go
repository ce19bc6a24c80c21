package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/robalyx/stemdata/cmd/stemdata/commands"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "stemdata",
		Usage: "Build flexion and invariant word lists from a morphological dictionary",
		Commands: []*cli.Command{
			commands.BuildCommand(),
			commands.PackCommand(),
			commands.PublishCommand(),
			commands.CheckCommand(),
		},
	}

	return app.Run(ctx, os.Args)
}
