// Package main implements uptaskctl, the operator CLI for the UpTask API.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "uptaskctl",
	Short: "Operator commands for the UpTask API",
	Long: `uptaskctl runs maintenance tasks against an UpTask deployment.
Store and auth settings are read from the same environment (and .env file)
as the API server.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(healthCmd)
}
