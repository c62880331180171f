package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/mcp"
)

var (
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	toolNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var toolsCmd = &cobra.Command{
	Use:   "tools [query]",
	Short: "List tools by category",
	Long: `List the available tools grouped by category.

With a query, only tools whose name, description or category contains it
are listed. No project is needed.

Example:
  unity-mcp-server tools
  unity-mcp-server tools "missing script"
  unity-mcp-server tools animator`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTools,
}

func runTools(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	groups, err := mcp.SearchCatalog(query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(groups) == 0 {
		fmt.Fprintln(out, "No tools found.")
		return nil
	}

	total := 0
	for _, g := range groups {
		fmt.Fprintln(out, categoryStyle.Render(g.Category))
		for _, t := range g.Tools {
			fmt.Fprintf(out, "  %s %s\n", toolNameStyle.Render(fmt.Sprintf("%-36s", t.Name)), dimStyle.Render(t.Description))
		}
		fmt.Fprintln(out)
		total += len(g.Tools)
	}
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d tools", total)))
	return nil
}
