package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services injected by main.
var (
	actionRunner    driving.ActionRunner
	optionsLoader   driving.OptionsLoader
	settingsService driving.SettingsService
	binaryStore     driven.BinaryStore
)

// Services aggregates the ports the CLI depends on.
type Services struct {
	Actions  driving.ActionRunner
	Options  driving.OptionsLoader
	Settings driving.SettingsService
	Binaries driven.BinaryStore
}

var errNotWired = errors.New("action runner not configured")

var rootCmd = &cobra.Command{
	Use:   "paperless",
	Short: "Work with a Paperless-ngx instance from the command line",
	Long: `paperless talks to the Paperless-ngx REST API.

It uploads, searches, updates and downloads documents, and manages
correspondents, document types and tags. Results are printed as JSON lines.

Configure the connection first:
  paperless settings connect --domain https://paperless.example.com`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose") //nolint:errcheck // flag is always registered
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
}

// SetServices injects the application services.
func SetServices(s Services) {
	actionRunner = s.Actions
	optionsLoader = s.Options
	settingsService = s.Settings
	binaryStore = s.Binaries
}

// SetVersion sets the version printed by "paperless version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command context, or Background when the
// command is run without one (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
