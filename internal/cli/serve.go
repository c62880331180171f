package cli

import (
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Start the MCP server on stdio",
	Long: `Start the MCP (Model Context Protocol) server.

The server communicates via stdio (standard input/output) using JSON-RPC,
so any MCP client can launch it directly.
Logs are written to stderr.

You can specify the Unity project directory in three ways:
  1. Pass it as an argument: unity-mcp-server serve /path/to/project
  2. Use the --project flag: unity-mcp-server serve --project /path/to/project
  3. Set UNITY_PROJECT_PATH (or project_path in unity-mcp.yaml)

Examples:
  unity-mcp-server serve ~/Projects/MyGame
  UNITY_PROJECT_PATH=~/Projects/MyGame unity-mcp-server serve`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	var projectArg string
	if len(args) > 0 {
		projectArg = args[0]
	}

	server, err := openServer(cmd, projectArg)
	if err != nil {
		return err
	}
	defer server.Close()

	// blocks until stdin closes
	return server.ServeStdio()
}
