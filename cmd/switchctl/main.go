// Package main implements the switchctl CLI for manual operations against
// the switchd HTTP server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL for the switchd HTTP server
	serverURL string
	// sessionID continues an existing conversation when set
	sessionID string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "switchctl",
	Short: "CLI for switchd routing operations",
	Long: `switchctl is a command-line interface for interacting with the switchd
routing daemon. It can send requests through the router, list discovered
specialists and inspect session history.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "switchd server URL")
	askCmd.Flags().StringVar(&sessionID, "session", "", "session id to continue (empty starts a new session)")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(specialistsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(healthCmd)
}

// askCmd routes a request through the daemon
var askCmd = &cobra.Command{
	Use:   "ask <text>",
	Short: "Route a request and print the response",
	Long: `Send a request through the switchd router and print the response
fragments in order.

Examples:
  # Ask a news question
  switchctl ask "Tell me about the election"

  # Ask a finance question and continue the session later
  switchctl ask "How did \$AAPL do this quarter?"
  switchctl ask --session <id> "And compared to last year?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// specialistsCmd lists registered specialists
var specialistsCmd = &cobra.Command{
	Use:   "specialists",
	Short: "List discovered specialist services",
	RunE:  runSpecialists,
}

// historyCmd prints a session transcript
var historyCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "Show the recorded turns of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

// healthCmd checks server health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check switchd server health",
	RunE:  runHealth,
}

// MessageRequest matches internal/httpapi/server.go MessageRequest
type MessageRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
}

// MessageResponse matches internal/httpapi/server.go MessageResponse
type MessageResponse struct {
	SessionID string   `json:"session_id"`
	Responses []string `json:"responses"`
}

// SpecialistsResponse matches internal/httpapi/server.go SpecialistsResponse
type SpecialistsResponse struct {
	Specialists []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Version     string `json:"version"`
	} `json:"specialists"`
}

// HistoryResponse matches internal/httpapi/server.go HistoryResponse
type HistoryResponse struct {
	SessionID string `json:"session_id"`
	Turns     []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"turns"`
}

// HealthResponse matches internal/httpapi/server.go HealthResponse
type HealthResponse struct {
	Status string `json:"status"`
}

// runAsk handles the ask command
func runAsk(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	reqJSON, err := json.Marshal(MessageRequest{Text: text, SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/messages", serverURL)
	httpReq, err := http.NewRequest("POST", url, bytes.NewReader(reqJSON))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// The daemon's own specialist timeout is 120s; leave headroom.
	client := &http.Client{
		Timeout: 130 * time.Second,
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	var msgResp MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	for _, fragment := range msgResp.Responses {
		fmt.Println(fragment)
	}
	fmt.Fprintf(os.Stderr, "\n[switchctl] session: %s\n", msgResp.SessionID)

	return nil
}

// runSpecialists handles the specialists command
func runSpecialists(cmd *cobra.Command, args []string) error {
	url := fmt.Sprintf("%s/api/v1/specialists", serverURL)

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	var listResp SpecialistsResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(listResp.Specialists) == 0 {
		fmt.Println("No specialists registered.")
		return nil
	}
	for _, card := range listResp.Specialists {
		fmt.Printf("%s\t%s\t%s\n", card.Name, card.Version, card.Description)
	}

	return nil
}

// runHistory handles the history command
func runHistory(cmd *cobra.Command, args []string) error {
	url := fmt.Sprintf("%s/api/v1/sessions/%s/history", serverURL, args[0])

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	var histResp HistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&histResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	for _, turn := range histResp.Turns {
		fmt.Printf("[%s] %s\n", turn.Role, turn.Content)
	}

	return nil
}

// runHealth handles the health command
func runHealth(cmd *cobra.Command, args []string) error {
	url := fmt.Sprintf("%s/health", serverURL)

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect to %s: %v\n", url, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	var healthResp HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&healthResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Server Status: %s\n", healthResp.Status)
	fmt.Printf("Server URL: %s\n", serverURL)

	return nil
}

// statusError formats a non-200 response into an error.
func statusError(resp *http.Response) error {
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("server returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
	}
	return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
