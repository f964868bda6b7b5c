package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ccswitch/ccswitch/internal/config"
	"github.com/ccswitch/ccswitch/internal/fancy"
	"github.com/ccswitch/ccswitch/internal/state"
	"github.com/urfave/cli/v3"
)

var configCmd = &cli.Command{
	Name:  "config",
	Usage: "Inspect, back up, and restore the unified config",
	Commands: []*cli.Command{
		configPathCmd,
		configShowCmd,
		configValidateCmd,
		configExportCmd,
		configImportCmd,
		configBackupCmd,
		configBackupsCmd,
		configRestoreCmd,
		configResetCmd,
	},
}

var configPathCmd = &cli.Command{
	Name:  "path",
	Usage: "Print the unified config and backup locations",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		fmt.Printf("config:  %s\n", fancy.PathText(app.ConfigPath()))
		entries, err := app.ListBackups()
		if err != nil {
			return err
		}
		fmt.Printf("backups: %s %s\n", fancy.PathText(app.BackupDir()),
			fancy.SummaryText(fmt.Sprintf("(%d)", len(entries))))
		return nil
	},
}

var configShowCmd = &cli.Command{
	Name:  "show",
	Usage: "Show the unified config",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "tree",
			Aliases: []string{"t"},
			Usage:   "Render as a tree instead of raw JSON",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}

		if cmd.Bool("tree") {
			fmt.Println(app.TreeString())
			return nil
		}
		data, err := app.ConfigBytes()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configValidateCmd = &cli.Command{
	Name:      "validate",
	Aliases:   []string{"lint"},
	Usage:     "Validate the unified config, or an arbitrary config file",
	ArgsUsage: "[path]",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() > 0 {
			path := cmd.Args().Get(0)
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			cfg, err := config.FromBytes(data)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Printf("Configuration file %s is valid\n", fancy.PathText(path))
			renderConfigSummary(cfg)
			return nil
		}

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		if err := app.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Println(fancy.ValidText("Unified config is valid."))

		data, err := app.ConfigBytes()
		if err != nil {
			return err
		}
		cfg, err := config.FromBytes(data)
		if err != nil {
			return err
		}
		renderConfigSummary(cfg)
		return nil
	},
}

func renderConfigSummary(cfg *config.Config) {
	for _, appType := range config.AllApps() {
		count := 0
		if appCfg := cfg.Apps[appType]; appCfg != nil {
			count = len(appCfg.Providers)
		}
		fmt.Printf("  %s: %s provider(s)\n",
			fancy.AppText(appType.DisplayName()), fancy.CountText(fmt.Sprintf("%d", count)))
	}
	fmt.Printf("  MCP servers: %s\n", fancy.CountText(fmt.Sprintf("%d", len(cfg.Mcp.Servers))))
}

var configExportCmd = &cli.Command{
	Name:      "export",
	Usage:     "Write the unified config to a file",
	ArgsUsage: "<path>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf("destination path required")
		}
		path := cmd.Args().Get(0)

		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		if err := app.ExportTo(path); err != nil {
			return err
		}

		fmt.Printf("Exported to %s\n", fancy.PathText(path))
		return nil
	},
}

var configImportCmd = &cli.Command{
	Name:      "import",
	Usage:     "Replace the unified config with a validated file (backs up first)",
	ArgsUsage: "<path>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the confirmation prompt",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf("source path required")
		}
		path := cmd.Args().Get(0)

		ok, err := confirm("Replace the unified config with "+path, cmd.Bool("yes"))
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
		backupPath, err := app.ImportFromPath(path)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %s\n", fancy.PathText(path))
		fmt.Printf("Previous config saved to %s\n", fancy.PathText(backupPath))
		return nil
	},
}

var configBackupCmd = &cli.Command{
	Name:  "backup",
	Usage: "Snapshot the unified config",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}
		path, err := app.CreateBackup()
		if err != nil {
			return err
		}
		fmt.Printf("Backup written to %s\n", fancy.PathText(path))
		return nil
	},
}

var configBackupsCmd = &cli.Command{
	Name:  "backups",
	Usage: "List snapshots, newest first",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "prune",
			Usage: "Keep only this many snapshots and delete the rest",
			Value: -1,
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}

		if keep := cmd.Int("prune"); keep >= 0 {
			removed, err := app.PruneBackups(int(keep))
			if err != nil {
				return err
			}
			fmt.Printf("Pruned %s snapshot(s)\n", fancy.CountText(fmt.Sprintf("%d", removed)))
		}

		entries, err := app.ListBackups()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println(fancy.SummaryText("No backups yet."))
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s\n",
				e.ModTime.Format("2006-01-02 15:04:05"), fancy.PathText(e.Path))
		}
		return nil
	},
}

var configRestoreCmd = &cli.Command{
	Name:      "restore",
	Usage:     "Restore the unified config from a snapshot (backs up first)",
	ArgsUsage: "[path]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the confirmation prompt",
		},
		&cli.BoolFlag{
			Name:  "latest",
			Usage: "Restore the most recent snapshot",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		app, err := state.NewDefault()
		if err != nil {
			return err
		}

		path := ""
		switch {
		case cmd.Bool("latest"):
			entries, err := app.ListBackups()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("no backups to restore")
			}
			path = entries[0].Path
		case cmd.Args().Len() > 0:
			path = cmd.Args().Get(0)
		default:
			return fmt.Errorf("snapshot path required (or use --latest)")
		}

		ok, err := confirm("Restore the unified config from "+path, cmd.Bool("yes"))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		backupPath, err := app.ImportFromPath(path)
		if err != nil {
			return err
		}

		fmt.Printf("Restored from %s\n", fancy.PathText(path))
		fmt.Printf("Previous config saved to %s\n", fancy.PathText(backupPath))
		return nil
	},
}

var configResetCmd = &cli.Command{
	Name:  "reset",
	Usage: "Replace the unified config with the default empty document (backs up first)",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the confirmation prompt",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		ok, err := confirm("Reset the unified config", cmd.Bool("yes"))
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
		backupPath, err := app.Reset()
		if err != nil {
			return err
		}

		fmt.Println(fancy.ValidText("Unified config reset."))
		fmt.Printf("Previous config saved to %s\n", fancy.PathText(backupPath))
		return nil
	},
}
