package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/credential"
	"github.com/tillworks/till/internal/printer"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the POS service",
	Long: `Sign in with email and password. The returned access token and profile
are stored locally so later commands reuse the session.

Missing values are prompted for; the password prompt does not echo.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, store, _, err := newClient()
	if err != nil {
		return err
	}

	email := strings.TrimSpace(loginEmail)
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}

	password := loginPassword
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	// Required-field validation happens here, before any request is sent.
	if email == "" || password == "" {
		return printer.Error(
			"missing credentials",
			"Both email and password are required.",
			[]string{"till login --email cashier@example.com"},
		)
	}

	result, err := client.Login(ctx, email, password)
	if err != nil {
		if api.IsUnauthorized(err) {
			return printer.Error(
				"invalid credentials",
				"The POS service rejected this email and password.",
				nil,
			)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	cred := &credential.Credential{
		AccessToken: result.AccessToken,
		User:        result.User,
		ExpiresAt:   result.ExpiresAt,
	}
	if err := store.Save(cred); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	printer.Success("Signed in as %s (%s)\n", result.User.Email, result.User.Role)
	return nil
}

// promptLine reads one trimmed line from stdin.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing when stdin is a
// terminal, falling back to a plain line read otherwise (piped input).
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimSpace(line), nil
	}

	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
