package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"calshield/internal/gcal"
)

var authCmd = &cobra.Command{
	Use:   "auth --account <name>",
	Short: "Authorize a Google account for calendar access",
	Long: `Authorize a Google account and store its OAuth token.

Credentials come from GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET (a .env
file works) or from the credentials file in the config. The token is
saved as token-<account>.json in the configured token directory and
picked up by fetch.

Only read access to the calendar is requested.

Examples:
  calshield auth --account work
  calshield auth --account personal`,
	RunE: runAuth,
}

func init() {
	authCmd.Flags().StringP("account", "a", "", "name to save the token under (required unless --list)")
	authCmd.Flags().Bool("list", false, "list accounts that already have a token")

	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	account, _ := cmd.Flags().GetString("account")
	list, _ := cmd.Flags().GetBool("list")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if list {
		accounts, err := gcal.Accounts(cfg.Google.TokenDir)
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No authorized accounts found.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Authorized accounts:")
		for _, name := range accounts {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		}
		return nil
	}

	if account == "" {
		return fmt.Errorf("--account is required")
	}

	oauthCfg, err := gcal.OAuthConfig(cfg.Google)
	if err != nil {
		return err
	}

	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(cmd.OutOrStdout(), "Open this URL in your browser and authorize access:\n\n%s\n\n", authURL)
	fmt.Fprint(cmd.OutOrStdout(), "Paste the authorization code here: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	token, err := gcal.Exchange(context.Background(), oauthCfg, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := gcal.SaveToken(cfg.Google.TokenDir, account, token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", gcal.TokenPath(cfg.Google.TokenDir, account))
	return nil
}
