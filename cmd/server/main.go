package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Invoice and inventory tracker for a small shop",
	Long: `Keeps clients, products, invoices and supplier purchases for a single
business and derives stock levels, sales totals and accounts payable from them.

Run "server serve" to start the HTTP API. The other subcommands read the same
storage backend and print a report.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to an env file (default: ./.env if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
