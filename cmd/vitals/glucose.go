// ABOUTME: CLI command syncing glucose readings from the LibreLinkUp API.
// ABOUTME: Credentials come from environment variables, never from config.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/libre"
	"github.com/spf13/cobra"
)

var (
	glucoseGraph  bool
	glucoseDryRun bool
)

var glucoseCmd = &cobra.Command{
	Use:   "glucose",
	Short: "Sync glucose readings from LibreLinkUp",
	Long: `Pull recent glucose readings from the LibreLinkUp API and merge them into
the fact store with source "libre". This integration bypasses the file
import ledger; running it repeatedly never duplicates readings.

By default the logbook (~2 weeks of scanned readings) is fetched; --graph
fetches the last ~12 hours of historic readings instead.

CREDENTIALS:

  export LIBRELINKUP_EMAIL="you@example.com"
  export LIBRELINKUP_PASSWORD="..."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := os.Getenv("LIBRELINKUP_EMAIL")
		password := os.Getenv("LIBRELINKUP_PASSWORD")
		if email == "" || password == "" {
			return fmt.Errorf("LibreLinkUp credentials not found: set LIBRELINKUP_EMAIL and LIBRELINKUP_PASSWORD")
		}

		ctx := context.Background()
		client := libre.NewClient(libre.DefaultBaseURL)

		fmt.Println("🔐 Authenticating with LibreLinkUp...")
		if err := client.Login(ctx, email, password); err != nil {
			return err
		}

		result, err := libre.Sync(ctx, dbConn, client, libre.SyncOptions{
			UseGraph: glucoseGraph,
			DryRun:   glucoseDryRun,
		})
		if err != nil {
			return err
		}

		fmt.Printf("👤 Patient: %s\n", result.Patient)
		fmt.Printf("📥 Fetched %d readings\n", result.Fetched)
		if result.DryRun {
			color.Yellow("Dry run — nothing written")
			return nil
		}
		color.Green("✓ Merged %d new readings (%d already present)",
			result.Inserted, result.Fetched-result.Inserted)
		return nil
	},
}

func init() {
	glucoseCmd.Flags().BoolVar(&glucoseGraph, "graph", false, "Fetch 12h graph data instead of the logbook")
	glucoseCmd.Flags().BoolVar(&glucoseDryRun, "dry-run", false, "Fetch and report without writing")
}
