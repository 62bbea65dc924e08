package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nhle/fleet-dispatch/internal/app"
	"github.com/nhle/fleet-dispatch/internal/backend"
	"github.com/nhle/fleet-dispatch/internal/credential"
	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/store"
	appsync "github.com/nhle/fleet-dispatch/internal/sync"
)

var (
	// Global flags
	configPath string
	verbose    bool

	logger *zap.Logger
)

// rootCmd launches the interactive dashboard.
var rootCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Terminal dashboard for fleet load management",
	Long: `dispatch is a terminal dashboard for managing trucking loads.

It mirrors the remote load board into a local cache, keeps it fresh in
the background, and lets dispatchers change load statuses, edit broker
fields, and attach notes without leaving the terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDashboard,
}

// setKeyCmd stores the backend service key in the system keyring.
var setKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the backend service key in the system keyring",
	RunE:  runSetKey,
}

// migrateCmd rewrites legacy Active statuses without starting the UI.
var migrateCmd = &cobra.Command{
	Use:   "migrate-status",
	Short: "Rewrite legacy Active load statuses to In Transit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", model.DefaultConfigPath(), "config file path",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)
	rootCmd.AddCommand(setKeyCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initLogger builds a file-backed zap logger. The TUI owns the
// terminal, so log output never goes to stderr.
func initLogger() error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{cfg.LogPath}
	zcfg.ErrorOutputPaths = []string{cfg.LogPath}
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	return nil
}

// resolveAPIKey returns the service key, preferring the environment
// over the keyring.
func resolveAPIKey(cfg *model.AppConfig) (string, error) {
	if key := os.Getenv("DISPATCH_API_KEY"); key != "" {
		return key, nil
	}
	key, err := credential.Get(cfg.Backend.KeyName)
	if err != nil || key == "" {
		return "", fmt.Errorf(
			"no service key found: set DISPATCH_API_KEY or run 'dispatch set-key'",
		)
	}
	return key, nil
}

// buildClient assembles the backend client from config and credentials.
func buildClient(cfg *model.AppConfig) (*backend.Client, error) {
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf(
			"backend.base_url is not set: edit %s", configPath,
		)
	}
	key, err := resolveAPIKey(cfg)
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(cfg.Backend.TimeoutSec) * time.Second
	return backend.New(cfg.Backend.BaseURL, key, timeout, logger), nil
}

// runDashboard starts the interactive TUI.
func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	st, err := store.NewSQLiteStore(cfg.CachePath)
	if err != nil {
		return err
	}
	defer st.Close()

	poller := appsync.New(
		client,
		st,
		time.Duration(cfg.Display.PollIntervalSec)*time.Second,
		cfg.Display.ActivityLimit,
		logger,
	)

	m := app.New(client, st, poller, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())

	logger.Info("starting dashboard",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Int("poll_interval_sec", cfg.Display.PollIntervalSec),
	)

	_, err = program.Run()
	return err
}

// runSetKey prompts for the service key and stores it in the keyring.
func runSetKey(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	var key string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Backend service key").
			EchoMode(huh.EchoModePassword).
			Value(&key),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("no key entered")
	}

	if err := credential.Set(cfg.Backend.KeyName, key); err != nil {
		return err
	}
	fmt.Println("Service key stored.")
	return nil
}

// runMigrate runs the legacy status migration once and reports the count.
func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := client.MigrateLegacyActive(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("No legacy Active loads found.")
	} else {
		fmt.Printf("Migrated %d load(s) from Active to In Transit.\n", count)
	}
	return nil
}
