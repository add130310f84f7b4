package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terappia/terapp/internal/config"
	"github.com/terappia/terapp/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "terapp",
	Short: "Student depression screening survey",
	Long: "Terapp.ia: terminal survey that screens university students for depression risk.\n" +
		"It is a support and awareness tool, not a substitute for medical or psychological care.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite history database (overrides TERAPP_DB env var)")
	rootCmd.PersistentFlags().String("api-url", "", "Survey API base URL (overrides TERAPP_API_URL and TERAPP_ENV)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(insightCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the runtime config from the environment and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.ConfigFromEnv()
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.APIURL = u
		cfg.Env = ""
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TERAPP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the history database selected by the flags.
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
