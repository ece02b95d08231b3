package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
)

// MCP tools run against their own in-memory binary store, so they get a
// dedicated action runner.
var (
	mcpActions  driving.ActionRunner
	mcpBinaries mcp.BinaryStore
)

// SetMCPServices injects the services used by "paperless mcp serve".
func SetMCPServices(actions driving.ActionRunner, binaries mcp.BinaryStore) {
	mcpActions = actions
	mcpBinaries = binaries
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can use
Paperless-ngx. Every action is exposed as a tool (document_list,
tag_create, ...), plus list_options for tag, correspondent and document
type IDs. The same lists are readable as paperless://tags,
paperless://correspondents and paperless://document-types resources, and
paperless://documents/{id} returns the original file of a document.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  paperless mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  paperless mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Actions:  mcpActions,
		Options:  optionsLoader,
		Binaries: mcpBinaries,
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(commandContext(cmd), addr)
	}

	return server.Run(commandContext(cmd))
}
