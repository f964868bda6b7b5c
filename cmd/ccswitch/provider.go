package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/fancy"
	"github.com/ccswitch/ccswitch/internal/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"
)

var providerCmd = &cli.Command{
	Name:  "provider",
	Usage: "Manage per-application providers",
	Commands: []*cli.Command{
		providerListCmd,
		providerShowCmd,
		providerAddCmd,
		providerUseCmd,
		providerDeleteCmd,
	},
}

var providerShowCmd = &cli.Command{
	Name:      "show",
	Usage:     "Show one provider's details",
	ArgsUsage: "<app> <id>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 2 {
			return fmt.Errorf("application and provider id required")
		}
		appType, err := config.ParseAppType(cmd.Args().Get(0))
		if err != nil {
			return err
		}
		providerID := cmd.Args().Get(1)

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		providers, current := app.ListProviders(appType)
		for _, p := range providers {
			if p.ID != providerID {
				continue
			}

			t := fancy.ProviderTree(p.ID)
			t.AddChild("name: " + p.Name)
			if p.Category != "" {
				t.AddChild("category: " + p.Category)
			}
			if p.ID == current {
				t.AddChild(fancy.CurrentStyle.Render("current for " + appType.DisplayName()))
			}
			if len(p.Settings) > 0 {
				settingsBranch := fancy.NewComponentTree("settings")
				keys := make([]string, 0, len(p.Settings))
				for k := range p.Settings {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					value := fancy.TruncateString(fmt.Sprintf("%v", p.Settings[k]), 60)
					settingsBranch.AddChild(fmt.Sprintf("%s: %s", k, value))
				}
				t.AddChild(settingsBranch.Tree())
			}
			fmt.Println(t.Tree())
			return nil
		}
		return fmt.Errorf("provider '%s' not found for %s", providerID, appType.DisplayName())
	},
}

var providerListCmd = &cli.Command{
	Name:      "list",
	Aliases:   []string{"ls"},
	Usage:     "List providers for one application",
	ArgsUsage: "<app>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf("application required (claude, codex, gemini)")
		}
		appType, err := config.ParseAppType(cmd.Args().Get(0))
		if err != nil {
			return err
		}

		app, err := state.NewDefault()
		if err != nil {
			return err
		}

		providers, current := app.ListProviders(appType)
		if len(providers) == 0 {
			fmt.Println(fancy.SummaryText("No providers registered for " + appType.DisplayName() + "."))
			return nil
		}

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(fancy.BranchStyle).
			Headers("ID", "NAME", "CATEGORY", "ACTIVE")
		for _, p := range providers {
			active := ""
			if p.ID == current {
				active = fancy.CurrentStyle.Render("●")
			}
			tbl.Row(fancy.ProviderText(p.ID), p.Name, p.Category, active)
		}
		fmt.Println(tbl)
		return nil
	},
}

var providerAddCmd = &cli.Command{
	Name:      "add",
	Usage:     "Register a provider for one application",
	ArgsUsage: "<app> <id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "Display name (defaults to the id)",
		},
		&cli.StringFlag{
			Name:  "category",
			Usage: "Provider category; 'official' marks a built-in provider",
		},
		&cli.StringFlag{
			Name:  "settings",
			Usage: "Provider settings as a JSON object, passed to the application verbatim",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 2 {
			return fmt.Errorf("application and provider id required")
		}
		appType, err := config.ParseAppType(cmd.Args().Get(0))
		if err != nil {
			return err
		}

		p := &config.Provider{
			ID:       cmd.Args().Get(1),
			Name:     cmd.String("name"),
			Category: cmd.String("category"),
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		if raw := cmd.String("settings"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &p.Settings); err != nil {
				return fmt.Errorf("invalid --settings JSON: %w", err)
			}
		}

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		if err := app.AddProvider(appType, p); err != nil {
			return err
		}

		fmt.Printf("Registered provider %s for %s\n",
			fancy.ProviderText(p.ID), fancy.AppText(appType.DisplayName()))
		return nil
	},
}

var providerUseCmd = &cli.Command{
	Name:      "use",
	Aliases:   []string{"switch"},
	Usage:     "Make a provider current for one application",
	ArgsUsage: "<app> <id>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 2 {
			return fmt.Errorf("application and provider id required")
		}
		appType, err := config.ParseAppType(cmd.Args().Get(0))
		if err != nil {
			return err
		}
		providerID := cmd.Args().Get(1)

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		if err := app.SwitchProvider(appType, providerID); err != nil {
			return err
		}

		fmt.Printf("Now using %s for %s\n",
			fancy.ProviderText(providerID), fancy.AppText(appType.DisplayName()))
		return nil
	},
}

var providerDeleteCmd = &cli.Command{
	Name:      "delete",
	Aliases:   []string{"rm"},
	Usage:     "Delete a provider",
	ArgsUsage: "<app> <id>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the confirmation prompt",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 2 {
			return fmt.Errorf("application and provider id required")
		}
		appType, err := config.ParseAppType(cmd.Args().Get(0))
		if err != nil {
			return err
		}
		providerID := cmd.Args().Get(1)

		ok, err := confirm(
			fmt.Sprintf("Delete provider '%s' for %s", providerID, appType.DisplayName()),
			cmd.Bool("yes"))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		if err := app.DeleteProvider(appType, providerID); err != nil {
			return err
		}

		fmt.Printf("Deleted provider %s\n", fancy.ProviderText(providerID))
		return nil
	},
}
