// Command paperless is a command-line client and MCP server for the
// Paperless-ngx REST API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/auth"
	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/httpclient"
	filestore "github.com/custodia-labs/paperless-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/paperless-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/paperless-cli/internal/core/services"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load(".env")

	configDir, err := file.DefaultConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	// Invalid environment overrides fall back to the stored settings so
	// the settings commands stay usable.
	settings, err := settingsService.Effective()
	if err != nil {
		logger.Warn("ignoring environment overrides: %v", err)
		if settings, err = settingsService.Get(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: load settings: %v\n", err)
			return err
		}
	}

	maxUpload, err := services.MaxUploadBytes(settings)
	if err != nil {
		logger.Warn("ignoring upload limit: %v", err)
		maxUpload = 0
	}

	requester := httpclient.NewClient(auth.NewSettingsProvider(settingsService), httpclient.Config{
		Timeout:         settings.API.Timeout,
		RequestInterval: settings.API.RequestInterval,
		Logger:          logger.Named("httpclient"),
	})

	binaryPath := settings.Binary.Path
	if binaryPath == "" {
		binaryPath = settingsService.GetDefaults().Binary.Path
	}
	binaries, err := filestore.NewBinaryStore(binaryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open binary store: %v\n", err)
		return err
	}

	actions := services.NewActionService(requester, binaries, services.ActionConfig{
		MaxUploadSize: maxUpload,
		Logger:        logger.Named("actions"),
	})

	// MCP tool results carry their bytes inline, so the server keeps
	// downloads in memory only until they are returned.
	mcpBinaries := memory.NewBinaryStore()
	mcpActions := services.NewActionService(requester, mcpBinaries, services.ActionConfig{
		MaxUploadSize: maxUpload,
		Logger:        logger.Named("mcp"),
	})

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Actions:  actions,
		Options:  services.NewOptionsService(requester),
		Settings: settingsService,
		Binaries: binaries,
	})
	cli.SetMCPServices(mcpActions, mcpBinaries)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return cli.Execute(ctx)
}
