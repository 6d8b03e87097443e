package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	limit  int
	upsert struct {
		uuid, username                         string
		elo, highestElo, kills, deaths, streak int
	}
)

func init() {
	leaderboardCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of players (0 uses the server default)")

	upsertCmd.Flags().StringVar(&upsert.uuid, "uuid", "", "Player uuid")
	upsertCmd.Flags().StringVar(&upsert.username, "username", "", "Player name")
	upsertCmd.Flags().IntVar(&upsert.elo, "elo", 1000, "Current Elo")
	upsertCmd.Flags().IntVar(&upsert.highestElo, "highest-elo", 0, "Highest Elo reached (defaults to --elo)")
	upsertCmd.Flags().IntVar(&upsert.kills, "kills", 0, "Total kills")
	upsertCmd.Flags().IntVar(&upsert.deaths, "deaths", 0, "Total deaths")
	upsertCmd.Flags().IntVar(&upsert.streak, "streak", 0, "Current streak, negative for a losing streak")
	_ = upsertCmd.MarkFlagRequired("uuid")
	_ = upsertCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(upsertCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the ranked leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/leaderboard"
		if limit > 0 {
			endpoint += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var upsertCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Create or replace a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		highest := upsert.highestElo
		if highest == 0 {
			highest = upsert.elo
		}
		body, err := json.Marshal(map[string]any{
			"uuid":           upsert.uuid,
			"username":       upsert.username,
			"elo":            upsert.elo,
			"highest_elo":    highest,
			"kills":          upsert.kills,
			"deaths":         upsert.deaths,
			"current_streak": upsert.streak,
		})
		if err != nil {
			return fmt.Errorf("failed to encode player: %w", err)
		}
		return performRequest(http.MethodPost, "/players", body)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func performRequest(method, endpoint string, payload []byte) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
