package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"

	"calshield/internal/gcal"
)

func newAuthTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "auth"}
	cmd.SetOut(out)
	cmd.Flags().String("account", "", "account name")
	cmd.Flags().Bool("list", false, "list accounts")
	return cmd
}

func TestAuthListEmpty(t *testing.T) {
	viper.Reset()
	viper.Set("google.token_dir", t.TempDir())

	var out bytes.Buffer
	cmd := newAuthTestCmd(&out)
	if err := cmd.Flags().Set("list", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := runAuth(cmd, nil); err != nil {
		t.Fatalf("runAuth() error = %v", err)
	}

	if !strings.Contains(out.String(), "No authorized accounts") {
		t.Errorf("expected empty-list message, got:\n%s", out.String())
	}
}

func TestAuthListShowsSavedAccounts(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	viper.Set("google.token_dir", dir)

	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}
	if err := gcal.SaveToken(dir, "work", token); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	var out bytes.Buffer
	cmd := newAuthTestCmd(&out)
	if err := cmd.Flags().Set("list", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := runAuth(cmd, nil); err != nil {
		t.Fatalf("runAuth() error = %v", err)
	}

	if !strings.Contains(out.String(), "work") {
		t.Errorf("expected saved account in listing, got:\n%s", out.String())
	}
}

func TestAuthRequiresAccount(t *testing.T) {
	viper.Reset()
	viper.Set("google.token_dir", t.TempDir())

	var out bytes.Buffer
	cmd := newAuthTestCmd(&out)

	if err := runAuth(cmd, nil); err == nil {
		t.Error("expected error when neither --account nor --list is given")
	}
}
