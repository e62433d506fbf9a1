package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/config"
	"github.com/abhisek/tutor/internal/logging"
	"github.com/abhisek/tutor/internal/store"
)

// current holds what PersistentPreRunE resolved for the running command.
var current struct {
	cfg    *config.Config
	logger *log.Logger
}

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Personalized AI tutoring assistant",
	Long: "Tutor explains concepts, evaluates answers and generates exercises " +
		"adapted to a student profile, using a configurable LLM provider.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default: tutor.yaml in ., $XDG_CONFIG_HOME/tutor, ~/.config/tutor)")
	pf.String("db", "", "Path to SQLite audit database (overrides TUTOR_DB env var)")
	pf.String("profile", "", "Path to a student profile (YAML or JSON)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.Bool("raw", false, "Print plain text without styling")

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the logger before any subcommand.
func setup(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: file})
	if err != nil {
		return err
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	current.cfg = cfg
	current.logger = logging.New(os.Stderr, level)
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured db key, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if current.cfg != nil && current.cfg.DB != "" {
		return current.cfg.DB, store.EnsureDir(current.cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the audit database for cmd.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
