package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "blockworld",
		Short: "Admin tool for a blockworld game server",
		Long: `blockworld runs and administers the blockworld state-sync engine.

The serve command starts the engine and its admin API. Every other
command is a client of that API: inspecting the server overview,
permission lists, logs and player history, sending chat messages,
driving lifecycle actions, and streaming live events.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BLOCKWORLD_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "API token (env: BLOCKWORLD_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newOverviewCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newLogsCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newOnlineCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newLifecycleCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
