package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DaanHessen/jterm/internal/engine"
	"github.com/DaanHessen/jterm/internal/export"
	"github.com/DaanHessen/jterm/internal/store"
	"github.com/DaanHessen/jterm/internal/text"
	"github.com/DaanHessen/jterm/internal/ui"
	"github.com/DaanHessen/jterm/internal/util"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

type globalFlags struct {
	configPath  string
	dataDir     string
	backend     string
	dsn         string
	theme       string
	onLoadError string
	debug       bool
}

func newRootCmd() *cobra.Command {
	var f globalFlags
	root := &cobra.Command{
		Use:           "jterm",
		Short:         "Track how well you know Japan's 47 prefectures",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default ~/.jterm/config.yaml)")
	pf.StringVar(&f.dataDir, "data-dir", "", "data directory (default ~/.jterm)")
	pf.StringVar(&f.backend, "backend", "", "progress backend: json|sqlite|postgres")
	pf.StringVar(&f.dsn, "dsn", "", "PostgreSQL DSN for the postgres backend")
	pf.StringVar(&f.theme, "theme", "", "color theme")
	pf.StringVar(&f.onLoadError, "on-load-error", "", "when progress cannot be read: fail|empty")
	pf.BoolVar(&f.debug, "debug", false, "debug logging")

	root.AddCommand(
		newVersionCmd(),
		newStatsCmd(&f),
		newExportCmd(&f),
		newMigrateCmd(&f),
	)
	return root
}

// loadConfig layers explicitly set flags over file and environment settings.
func loadConfig(cmd *cobra.Command, f globalFlags) (util.Config, error) {
	set := cmd.Flags().Changed
	return util.Load(f.configPath, func(c *util.Config) {
		if set("data-dir") {
			c.DataDir = f.dataDir
		}
		if set("backend") {
			c.Backend = f.backend
		}
		if set("dsn") {
			c.DSN = f.dsn
		}
		if set("theme") {
			c.Theme = f.theme
		}
		if set("on-load-error") {
			c.OnLoadError = f.onLoadError
		}
		if set("debug") {
			c.Debug = f.debug
		}
	})
}

func runTUI(ctx context.Context, cfg util.Config) error {
	logger, closeLog, err := util.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	progress, err := store.LoadProgress(ctx, st, cfg.OnLoadError, logger)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	logger.Info("session start", "backend", cfg.Backend, "regions", len(progress))

	session := engine.NewSession(engine.DefaultCatalog(), progress, st, export.NewWriter(cfg.ExportDir), logger)
	err = ui.Run(ctx, session, ui.Options{Theme: cfg.Theme, MapImage: cfg.MapImage, Logger: logger})
	logger.Info("session end", "err", err)
	return err
}

// openProgress loads progress for the non-interactive subcommands.
func openProgress(cmd *cobra.Command, f *globalFlags) (util.Config, engine.Progress, error) {
	cfg, err := loadConfig(cmd, *f)
	if err != nil {
		return util.Config{}, nil, err
	}
	st, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		return util.Config{}, nil, err
	}
	defer st.Close()
	p, err := store.LoadProgress(cmd.Context(), st, cfg.OnLoadError, util.NewCLILogger(cfg))
	if err != nil {
		return util.Config{}, nil, fmt.Errorf("load progress: %w", err)
	}
	return cfg, p, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "jterm", version)
		},
	}
}

func newStatsCmd(f *globalFlags) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a progress summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := openProgress(cmd, f)
			if err != nil {
				return err
			}
			c := engine.DefaultCatalog()
			md := text.ReportMarkdown(c, p, engine.ComputeStats(c, p), time.Now())
			r := text.NewPlain()
			if !plain {
				if glam, err := text.NewGlamour("dark", 80); err == nil {
					r = text.WithFallback(glam, r)
				}
			}
			out, err := r.Render(md)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print without terminal styling")
	return cmd
}

func newExportCmd(f *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write progress to ~/jterm_export.{json,csv} or a markdown report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := engine.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, p, err := openProgress(cmd, f)
			if err != nil {
				return err
			}
			c := engine.DefaultCatalog()
			path, err := export.NewWriter(cfg.ExportDir).Export(cmd.Context(), ft, c, p, engine.ComputeStats(c, p))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(engine.FormatJSON), "json|csv|md")
	return cmd
}

func newMigrateCmd(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the postgres schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *f)
			if err != nil {
				return err
			}
			migrator, err := store.NewMigrator(cfg.DSN)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			switch args[0] {
			case "up":
				err = migrator.Up(ctx)
			case "down":
				err = migrator.Down(ctx)
			default:
				return fmt.Errorf("unknown migrate action %q; use up|down", args[0])
			}
			if err != nil && !errors.Is(err, store.ErrNoChange) {
				return err
			}
			if errors.Is(err, store.ErrNoChange) {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations to apply")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrations %s done\n", args[0])
			return nil
		},
	}
}
