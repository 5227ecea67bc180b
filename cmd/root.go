package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindframe/internal/battery"
	"github.com/abhisek/mindframe/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mindframe",
	Short: "Questionnaire scoring pipeline",
	Long: "Mindframe scores psychological questionnaire sessions: it normalizes " +
		"mixed response encodings, accumulates domain scores with confidence " +
		"intervals, cross-validates screening indicators, and classifies " +
		"personality archetypes.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MINDFRAME_DB env var)")
	rootCmd.PersistentFlags().String("battery", "", "Path to a battery YAML file (default: built-in battery)")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(batteryCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MINDFRAME_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveBattery loads the battery named by --battery, or the built-in one.
func resolveBattery(cmd *cobra.Command) (*battery.Battery, error) {
	p, _ := cmd.Flags().GetString("battery")
	if p == "" {
		return battery.Builtin()
	}
	bat, err := battery.Load(p)
	if err != nil {
		return nil, fmt.Errorf("load battery %s: %w", p, err)
	}
	return bat, nil
}

// openStore resolves the DB path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
