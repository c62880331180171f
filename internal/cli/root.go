package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/config"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/logging"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/mcp"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unity"
)

var rootCmd = &cobra.Command{
	Use:   "unity-mcp-server",
	Short: "Read-only MCP tools for inspecting Unity projects",
	Long: `unity-mcp-server - Unity project inspection over MCP

Exposes a Unity project's assets, scenes, prefabs, scripts, assemblies,
packages and settings as MCP tools. The project is never modified and the
Unity editor does not need to be running.

Highlights:
  - GUID/path resolution and reverse reference search
  - Assembly and package dependency graphs with cycle detection
  - Broken reference scans and a release-readiness rollup

Quick Start:
  unity-mcp-server serve /path/to/UnityProject   Start the MCP server
  unity-mcp-server tools references               Find tools by keyword
  unity-mcp-server call list_build_scenes -p .    Run one tool and print JSON`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP(config.FlagProject, "p", "", "Unity project directory (env UNITY_PROJECT_PATH)")
	rootCmd.PersistentFlags().String(config.FlagLogLevel, "", "Log level: debug, info, warn, error (env UNITY_MCP_LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(versionCmd)
}

// openServer resolves configuration and opens the tool server for the
// configured project. projectArg, when set and --project is not, names the
// project directory.
func openServer(cmd *cobra.Command, projectArg string) (*mcp.Server, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if projectArg != "" && !cmd.Flags().Changed(config.FlagProject) {
		cfg.ProjectPath = projectArg
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("loaded config file")
	}

	root, err := cfg.ProjectRoot()
	if err != nil {
		return nil, err
	}
	project, err := unity.New(root)
	if err != nil {
		return nil, err
	}
	return mcp.NewServer(project, logger, buildVersion)
}
