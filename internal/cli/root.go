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
		Use:   "pcctl",
		Short: "CLI tool for the protocasual runtime API",
		Long: `pcctl drives a running protocasual server over its JSON API.

It covers the wallet, inventory, equipment and store, the daily reward,
tutorial, achievement and leaderboard services, and the game loop.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.RequestID)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PCCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.RequestID, "request-id", cfg.RequestID, "Request id sent with every call (env: PCCTL_REQUEST_ID)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newWalletCmd())
	rootCmd.AddCommand(newInventoryCmd())
	rootCmd.AddCommand(newEquipmentCmd())
	rootCmd.AddCommand(newStoreCmd())
	rootCmd.AddCommand(newDailyCmd())
	rootCmd.AddCommand(newTutorialCmd())
	rootCmd.AddCommand(newAchievementsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newGameCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
