/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "questrelay",
	Short: "Telegram announcement relay and Zealy notification bot",
	Long: `QuestRelay mirrors posts from a Telegram channel into a Discord webhook,
answers the /leaderboard command from the Zealy API, and receives Zealy
webhook callbacks over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
