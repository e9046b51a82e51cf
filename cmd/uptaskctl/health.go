package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/uptask/uptask-backend/internal/api/http"
)

var serverURL string

func init() {
	healthCmd.Flags().StringVar(&serverURL, "server", "http://localhost:4000", "UpTask API base URL")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check UpTask API health",
	Long: `Check the health endpoint of a running UpTask API.

Examples:
  uptaskctl health
  uptaskctl health --server https://api.uptask.app`,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, _ []string) error {
	url := strings.TrimRight(serverURL, "/") + "/health"

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var health httpapi.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Server Status: %s\n", health.Status)
	fmt.Fprintf(out, "Version: %s\n", health.Version)
	if health.Store != "" {
		fmt.Fprintf(out, "Store: %s (%s)\n", health.Store, health.StoreStatus)
	}
	if health.Status != "healthy" {
		return fmt.Errorf("server is %s", health.Status)
	}
	return nil
}
