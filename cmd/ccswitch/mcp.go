package main

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/fancy"
	"github.com/ccswitch/ccswitch/internal/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"
)

var mcpCmd = &cli.Command{
	Name:  "mcp",
	Usage: "Manage MCP servers and their per-application enablement",
	Commands: []*cli.Command{
		mcpListCmd,
		mcpShowCmd,
		mcpAddCmd,
		mcpEnableCmd,
		mcpDisableCmd,
		mcpDeleteCmd,
		mcpSyncCmd,
		mcpImportCmd,
		mcpValidateCmd,
	},
}

var mcpListCmd = &cli.Command{
	Name:    "list",
	Aliases: []string{"ls"},
	Usage:   "List registered MCP servers",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}

		servers := app.ListServers()
		if len(servers) == 0 {
			fmt.Println(fancy.SummaryText("No MCP servers registered. Try 'ccswitch mcp import'."))
			return nil
		}

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(fancy.BranchStyle).
			Headers("ID", "COMMAND", "APPS", "TAGS")
		for _, srv := range servers {
			apps := make([]string, 0, 3)
			for _, a := range srv.Apps.EnabledApps() {
				apps = append(apps, string(a))
			}
			tbl.Row(
				fancy.ServerText(srv.Name),
				strings.Join(append([]string{srv.Command}, srv.Args...), " "),
				fancy.AppText(strings.Join(apps, ",")),
				fancy.TagText(strings.Join(srv.Tags, ",")),
			)
		}
		fmt.Println(tbl)
		return nil
	},
}

var mcpShowCmd = &cli.Command{
	Name:      "show",
	Usage:     "Show one server's details",
	ArgsUsage: "<id>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf("server id required")
		}
		serverID := cmd.Args().Get(0)

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		for _, srv := range app.ListServers() {
			if srv.Name != serverID {
				continue
			}

			t := fancy.ServerTree(srv.Name)
			t.AddChild("command: " + strings.Join(append([]string{srv.Command}, srv.Args...), " "))
			for _, a := range srv.Apps.EnabledApps() {
				t.AddChild(fancy.AppText("enabled for " + a.DisplayName()))
			}
			if len(srv.Env) > 0 {
				t.AddChild(fmt.Sprintf("env: %d variable(s)", len(srv.Env)))
			}
			if len(srv.Tags) > 0 {
				t.AddChild(fancy.TagText(strings.Join(srv.Tags, ", ")))
			}
			fmt.Println(t.Tree())
			return nil
		}
		return fmt.Errorf("MCP server '%s' not found", serverID)
	},
}

var mcpAddCmd = &cli.Command{
	Name:      "add",
	Usage:     "Register a new MCP server",
	ArgsUsage: "<id> <command> [args...]",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "env",
			Usage: "Environment variable for the server (KEY=VALUE, repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "tag",
			Usage: "Free-form label (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "app",
			Usage: "Enable for an application right away (claude, codex, gemini; repeatable)",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 2 {
			return fmt.Errorf("server id and command required")
		}

		srv := &config.McpServer{
			Name:    cmd.Args().Get(0),
			Command: cmd.Args().Get(1),
			Args:    cmd.Args().Slice()[2:],
			Tags:    cmd.StringSlice("tag"),
		}
		for _, kv := range cmd.StringSlice("env") {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --env value '%s', expected KEY=VALUE", kv)
			}
			if srv.Env == nil {
				srv.Env = map[string]string{}
			}
			srv.Env[key] = value
		}
		for _, name := range cmd.StringSlice("app") {
			appType, err := config.ParseAppType(name)
			if err != nil {
				return err
			}
			srv.Apps.Set(appType, true)
		}

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		if err := app.AddServer(srv); err != nil {
			return err
		}

		fmt.Printf("Registered MCP server %s\n", fancy.ServerText(srv.Name))
		return nil
	},
}

func toggleAction(enabled bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 2 {
			return fmt.Errorf("server id and application required")
		}
		serverID := cmd.Args().Get(0)
		appType, err := config.ParseAppType(cmd.Args().Get(1))
		if err != nil {
			return err
		}

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		if err := app.ToggleApp(serverID, appType, enabled); err != nil {
			return err
		}

		verb := "Disabled"
		if enabled {
			verb = "Enabled"
		}
		fmt.Printf("%s %s for %s\n", verb,
			fancy.ServerText(serverID), fancy.AppText(appType.DisplayName()))
		return nil
	}
}

var mcpEnableCmd = &cli.Command{
	Name:      "enable",
	Usage:     "Enable a server for one application",
	ArgsUsage: "<id> <app>",
	Action:    toggleAction(true),
}

var mcpDisableCmd = &cli.Command{
	Name:      "disable",
	Usage:     "Disable a server for one application",
	ArgsUsage: "<id> <app>",
	Action:    toggleAction(false),
}

var mcpDeleteCmd = &cli.Command{
	Name:      "delete",
	Aliases:   []string{"rm"},
	Usage:     "Delete a server from the registry and every live file",
	ArgsUsage: "<id>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the confirmation prompt",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf("server id required")
		}
		serverID := cmd.Args().Get(0)

		ok, err := confirm(fmt.Sprintf("Delete MCP server '%s'", serverID), cmd.Bool("yes"))
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
		existed, err := app.DeleteServer(serverID)
		if err != nil {
			return err
		}
		if !existed {
			fmt.Println(fancy.SummaryText("Nothing to delete."))
			return nil
		}

		fmt.Printf("Deleted %s\n", fancy.ServerText(serverID))
		return nil
	},
}

var mcpSyncCmd = &cli.Command{
	Name:  "sync",
	Usage: "Re-project the registry into every application's live file",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		if err := app.SyncAllEnabled(); err != nil {
			return err
		}
		fmt.Println(fancy.ValidText("Live files synchronized."))
		return nil
	},
}

var mcpImportCmd = &cli.Command{
	Name:      "import",
	Usage:     "Import unknown MCP entries from one application's live file",
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
		count, err := app.ImportFromApp(appType)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %s new server(s) from %s\n",
			fancy.CountText(fmt.Sprintf("%d", count)), fancy.AppText(appType.DisplayName()))
		return nil
	},
}

var mcpValidateCmd = &cli.Command{
	Name:  "validate",
	Usage: "Check that every registered server command resolves on PATH",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}

		servers := app.ListServers()
		if len(servers) == 0 {
			fmt.Println(fancy.SummaryText("No MCP servers registered."))
			return nil
		}

		missing := 0
		for _, srv := range servers {
			if _, err := exec.LookPath(srv.Command); err != nil {
				missing++
				fmt.Printf("%s %s: command '%s' not found\n",
					fancy.ErrorText("✗"), srv.Name, srv.Command)
				continue
			}
			fmt.Printf("%s %s\n", fancy.ValidText("✓"), srv.Name)
		}
		if missing > 0 {
			return fmt.Errorf("%d server command(s) not resolvable", missing)
		}
		return nil
	},
}
