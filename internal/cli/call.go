package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/mcp"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [json-args]",
	Short: "Run a single tool and print its result",
	Long: `Run one tool against a Unity project and print the result, exactly as
an MCP client would receive it.

Arguments are passed as a JSON object.

Example:
  unity-mcp-server call get_project_info -p ~/Projects/MyGame
  unity-mcp-server call find_references '{"asset_path_or_guid":"Assets/Art/Hero.png"}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	var params json.RawMessage
	if len(args) > 1 {
		if !json.Valid([]byte(args[1])) {
			return fmt.Errorf("arguments must be a JSON object: %s", args[1])
		}
		params = json.RawMessage(args[1])
	}

	server, err := openServer(cmd, "")
	if err != nil {
		return err
	}
	defer server.Close()

	result, err := server.Call(cmd.Context(), args[0], params)
	if err != nil {
		return err
	}
	text, err := mcp.FormatResult(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
