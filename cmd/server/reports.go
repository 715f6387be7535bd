package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jamlick126/invoice-manager/internal/service"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print sales totals, accounts payable and low-stock items as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), envFile)
		if err != nil {
			return err
		}
		defer a.close()

		return printJSON(cmd, a.service.Dashboard(cmd.Context()))
	},
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Print remaining stock for every product as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), envFile)
		if err != nil {
			return err
		}
		defer a.close()

		return printJSON(cmd, map[string]any{"items": a.service.Inventory(cmd.Context())})
	},
}

var receiptCmd = &cobra.Command{
	Use:   "receipt <invoice-id>",
	Short: "Render the receipt for one invoice",
	Example: `  # HTML receipt to stdout
  server receipt inv-0192...

  # PDF receipt to a file (needs PDF_RENDERER_URL)
  server receipt inv-0192... --format pdf -o receipt.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runReceipt,
}

func init() {
	rootCmd.AddCommand(dashboardCmd, inventoryCmd, receiptCmd)

	receiptCmd.Flags().StringP("output", "o", "", "Write the receipt to this file instead of stdout")
	receiptCmd.Flags().String("format", service.ReceiptFormatHTML, "Receipt format: html or pdf")
}

func runReceipt(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	a, err := newApp(cmd.Context(), envFile)
	if err != nil {
		return err
	}
	defer a.close()

	body, _, err := a.service.Receipt(cmd.Context(), args[0], format)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(output, body, 0o644); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "receipt written to %s\n", output)
	return nil
}

func printJSON(cmd *cobra.Command, payload any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
