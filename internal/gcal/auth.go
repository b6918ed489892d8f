package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"calshield/internal/config"
)

// OAuthConfig builds the OAuth2 config for the read-only calendar scope.
// GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables take
// priority; otherwise the configured credentials file is parsed.
func OAuthConfig(cfg config.GoogleConfig) (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		return &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       []string{calendar.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		}, nil
	}

	credentialsFile := cfg.CredentialsFile
	if credentialsFile == "" {
		credentialsFile = "credentials.json"
	}

	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found: provide GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET or a credentials file", credentialsFile)
		}
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	oauthCfg.RedirectURL = "urn:ietf:wg:oauth:2.0:oob" // desktop app flow
	return oauthCfg, nil
}

// Exchange trades an authorization code for a token.
func Exchange(ctx context.Context, oauthCfg *oauth2.Config, authCode string) (*oauth2.Token, error) {
	return oauthCfg.Exchange(ctx, authCode)
}

// TokenPath returns the token file path for an account.
func TokenPath(tokenDir, account string) string {
	return filepath.Join(tokenDir, fmt.Sprintf("token-%s.json", account))
}

// SaveToken writes a token to the account's token file.
func SaveToken(tokenDir, account string, token *oauth2.Token) error {
	if tokenDir != "" {
		if err := os.MkdirAll(tokenDir, 0o700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(TokenPath(tokenDir, account), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("unable to create token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// LoadToken reads the token for an account.
func LoadToken(tokenDir, account string) (*oauth2.Token, error) {
	f, err := os.Open(TokenPath(tokenDir, account))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// Accounts lists the account names that have saved tokens.
func Accounts(tokenDir string) ([]string, error) {
	if tokenDir == "" {
		tokenDir = "."
	}
	entries, err := os.ReadDir(tokenDir)
	if err != nil {
		return nil, err
	}

	var accounts []string
	for _, entry := range entries {
		name := entry.Name()
		if len(name) > len("token-.json") && name[:6] == "token-" && filepath.Ext(name) == ".json" {
			accounts = append(accounts, name[6:len(name)-len(".json")])
		}
	}
	return accounts, nil
}
