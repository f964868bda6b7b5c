package main

import (
	"context"
	"fmt"

	"github.com/ccswitch/ccswitch/internal/fancy"
	"github.com/ccswitch/ccswitch/internal/state"
	"github.com/urfave/cli/v3"
)

var settingsCmd = &cli.Command{
	Name:  "settings",
	Usage: "Manage tool preferences",
	Commands: []*cli.Command{
		settingsShowCmd,
		settingsIntegrationCmd,
		settingsLanguageCmd,
	},
}

var settingsShowCmd = &cli.Command{
	Name:  "show",
	Usage: "Print the current preferences",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		s, err := app.Settings()
		if err != nil {
			return err
		}

		onOff := "off"
		if s.EnableClaudePluginIntegration {
			onOff = "on"
		}
		fmt.Printf("claude plugin integration: %s\n", onOff)
		lang := s.Language
		if lang == "" {
			lang = "(default)"
		}
		fmt.Printf("language: %s\n", lang)
		return nil
	},
}

var settingsIntegrationCmd = &cli.Command{
	Name:      "integration",
	Usage:     "Turn the Claude plugin integration on or off",
	ArgsUsage: "<on|off>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf("argument required: on or off")
		}

		var enabled bool
		switch cmd.Args().Get(0) {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			return fmt.Errorf("invalid argument '%s', expected on or off", cmd.Args().Get(0))
		}

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		if err := app.SetIntegration(enabled); err != nil {
			return err
		}

		if enabled {
			fmt.Println(fancy.ValidText("Claude plugin integration enabled."))
		} else {
			fmt.Println(fancy.SummaryText("Claude plugin integration disabled."))
		}
		return nil
	},
}

var settingsLanguageCmd = &cli.Command{
	Name:      "language",
	Usage:     "Set the display language (empty to reset)",
	ArgsUsage: "[lang]",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		s, err := app.Settings()
		if err != nil {
			return err
		}

		s.Language = cmd.Args().Get(0)
		if err := app.SaveSettings(s); err != nil {
			return err
		}

		if s.Language == "" {
			fmt.Println(fancy.SummaryText("Language reset to default."))
		} else {
			fmt.Printf("Language set to %s\n", s.Language)
		}
		return nil
	},
}
