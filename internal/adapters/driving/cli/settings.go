package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the Paperless-ngx connection and client options.

Environment variables (PAPERLESS_DOMAIN, PAPERLESS_TOKEN, ...) and a .env
file in the working directory override the stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runSettingsShow,
}

var settingsConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Configure the Paperless-ngx domain and API token",
	Long: `Store the instance URL and API token. Without --token the token is
read from the terminal without echo.`,
	RunE: runSettingsConnect,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a client option",
	Long: `Set a client option.

Keys:
  timeout           Request timeout (e.g. 30s)
  request-interval  Minimum spacing between requests (e.g. 250ms, 0 disables)
  max-upload-size   Largest accepted upload (e.g. 100MB)
  binary-path       Directory for downloaded files`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the settings are usable",
	RunE:  runSettingsValidate,
}

func init() {
	settingsConnectCmd.Flags().String("domain", "", "Instance URL (e.g. https://paperless.example.com)")
	settingsConnectCmd.Flags().String("token", "", "API token")
	_ = settingsConnectCmd.MarkFlagRequired("domain")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsConnectCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Effective()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Domain: %s\n", valueOrUnset(settings.API.Domain))
	if settings.API.Token != "" {
		cmd.Printf("  Token: %s\n", maskAPIKey(settings.API.Token))
	} else {
		cmd.Printf("  Token: (not set)\n")
	}
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	cmd.Printf("  Request interval: %s\n", settings.API.RequestInterval)
	cmd.Println()

	cmd.Println("[Upload]")
	cmd.Printf("  Max size: %s\n", valueOrUnset(settings.Upload.MaxSize))
	cmd.Println()

	cmd.Println("[Binary]")
	cmd.Printf("  Path: %s\n", valueOrUnset(settings.Binary.Path))
	cmd.Println()

	status := "configured"
	if !settings.Credentials().IsConfigured() {
		status = "not configured (run: paperless settings connect)"
	}
	cmd.Printf("Status: %s\n", status)
	return nil
}

func runSettingsConnect(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	domainURL, _ := cmd.Flags().GetString("domain") //nolint:errcheck // flag is registered
	token, _ := cmd.Flags().GetString("token")      //nolint:errcheck // flag is registered
	if token == "" {
		cmd.Print("API token: ")
		token = readPassword(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.SetConnection(domainURL, token); err != nil {
		return fmt.Errorf("failed to save connection: %w", err)
	}

	cmd.Printf("Connection saved: %s\n", strings.TrimRight(strings.TrimSpace(domainURL), "/"))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := applySetting(settings, args[0], args[1]); err != nil {
		return err
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("%s set to %s\n", args[0], args[1])
	return nil
}

// applySetting parses value and stores it under key.
func applySetting(settings *domain.Settings, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "timeout", "request-interval":
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid %s %q: expected a duration like 30s", key, value)
		}
		if key == "timeout" {
			settings.API.Timeout = d
		} else {
			settings.API.RequestInterval = d
		}
	case "max-upload-size":
		if _, err := units.FromHumanSize(value); err != nil {
			return fmt.Errorf("invalid %s %q: expected a size like 100MB", key, value)
		}
		settings.Upload.MaxSize = value
	case "binary-path":
		if value == "" {
			return fmt.Errorf("invalid %s: path is empty", key)
		}
		settings.Binary.Path = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Validating settings... ")
	if err := settingsService.Validate(); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	return nil
}

// Helper functions.

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	// Try to read password without echo
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
