package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chadmarket/backoffice/internal/model"
)

func newLoginCmd() *cobra.Command {
	var (
		serverURL string
		email     string
		password  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against a running server",
		Long: `Log in against a running back-office server and print the granted role
and navigation. Useful for checking a grant without opening a browser.`,
		Example: `  backoffice login --email admin@example.td
  backoffice login --server https://backoffice.example.td --email admin@example.td`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(serverURL, email, password)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Server base URL")
	cmd.Flags().StringVar(&email, "email", "", "Administrator email")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")

	return cmd
}

func runLogin(serverURL, email, password string) error {
	if email == "" {
		return fmt.Errorf("--email is required")
	}
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = string(pwBytes)
	}

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	url := strings.TrimRight(serverURL, "/") + "/api/v1/session"
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp model.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("login failed (%d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("login failed: HTTP %d", resp.StatusCode)
	}

	var session struct {
		Email      string          `json:"email"`
		Name       string          `json:"name"`
		RoleLabel  string          `json:"role_label"`
		Navigation []model.NavLink `json:"navigation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", session.Email, session.RoleLabel)
	fmt.Println("Accessible sections:")
	for _, link := range session.Navigation {
		fmt.Printf("  %-15s %s\n", link.Name, link.Path)
	}
	return nil
}
