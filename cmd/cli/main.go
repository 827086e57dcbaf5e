package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "erpledger-cli",
		Short: "ERP ledger CLI tool",
		Long:  `A command line interface for interacting with the ERP ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ERP ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Report commands
	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "Report operations",
	}
	reportsCmd.AddCommand(trialBalanceCmd())
	reportsCmd.AddCommand(agingCmd("receivables"))
	reportsCmd.AddCommand(agingCmd("payables"))
	rootCmd.AddCommand(reportsCmd)

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}
	accountCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(accountCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func trialBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Fetch the trial balance and check it sums to zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, status, err := apiGet("/api/v1/reports/trial-balance")
			if err != nil {
				return err
			}

			if status == http.StatusConflict {
				fmt.Printf("Trial balance MISMATCH (Status: %d)\nResponse: %s\n", status, string(body))
				os.Exit(1)
			}

			if status != http.StatusOK {
				return fmt.Errorf("unexpected status %d: %s", status, string(body))
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Println("Trial balance BALANCED")
			printJSON(result)
			return nil
		},
	}
}

func agingCmd(kind string) *cobra.Command {
	return &cobra.Command{
		Use:   "aging-" + kind,
		Short: "Fetch the " + kind + " aging report",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, status, err := apiGet("/api/v1/reports/aging/" + kind)
			if err != nil {
				return err
			}

			if status != http.StatusOK {
				return fmt.Errorf("unexpected status %d: %s", status, string(body))
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(result)
			return nil
		},
	}
}

func balanceCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Fetch an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/accounts/" + args[0] + "/balance"
			if asOf != "" {
				path += "?as_of=" + asOf
			}

			body, status, err := apiGet(path)
			if err != nil {
				return err
			}

			if status != http.StatusOK {
				return fmt.Errorf("unexpected status %d: %s", status, string(body))
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Balance cutoff date (YYYY-MM-DD or RFC3339)")
	return cmd
}

func apiGet(path string) ([]byte, int, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
