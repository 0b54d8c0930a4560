package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"questrelay/pkg/config"
	"questrelay/pkg/zealy"
)

// leaderboardCmd fetches and prints the current leaderboard, mainly useful
// for checking API credentials without starting the bot.
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Fetch and print the Zealy leaderboard",
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			return
		}

		client, err := zealy.NewClient(cfg.Zealy.BaseURL, cfg.Zealy.Subdomain, cfg.Zealy.APIKey)
		if err != nil {
			fmt.Printf("failed to initialize zealy client: %v\n", err)
			return
		}

		entries, err := client.Leaderboard(context.Background(), cfg.Zealy.Page, cfg.Zealy.Limit)
		if err != nil {
			fmt.Printf("failed to fetch leaderboard: %v\n", err)
			return
		}

		fmt.Println(zealy.Format(entries, cfg.LeaderboardURL()))
	},
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
}
