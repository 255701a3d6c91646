package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations and seeders so their init() funcs register them.
	_ "github.com/shashiranjanraj/vypar/database/migrations"
	_ "github.com/shashiranjanraj/vypar/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vypar",
	Short: "Vypar — order and product management API",
	Long:  "Vypar is an order and product management API. Use this CLI to serve it and manage its database.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
}
