package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:    "ccswitch",
		Version: Version,
		Usage:   "Manage providers and MCP servers across claude, codex, and gemini",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Emit logs as JSON instead of text",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("log-json") {
				SetupLoggerJSON(cmd.String("log-level"))
			} else {
				SetupLogger(cmd.String("log-level"))
			}
			return ctx, nil
		},
		Suggest: true,
		Commands: []*cli.Command{
			versionCmd,
			providerCmd,
			mcpCmd,
			configCmd,
			settingsCmd,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
