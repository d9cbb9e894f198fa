package main

import (
	"fmt"

	"ytmenu/internal/catalog"

	"github.com/spf13/cobra"
)

var toolsVerbose bool

// toolsCmd prints the tool catalog grouped by category.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools in the catalog",
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().BoolVarP(&toolsVerbose, "verbose", "v", false, "include parameter details")
}

func runTools(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	category := ""
	for _, tool := range catalog.All() {
		if tool.Category != category {
			category = tool.Category
			fmt.Fprintf(out, "\n%s\n", category)
		}

		def := tool.Definition()
		fmt.Fprintf(out, "  %-36s %s\n", def.Name, def.Description)

		if !toolsVerbose {
			continue
		}

		required := make(map[string]bool, len(def.InputSchema.Required))
		for _, name := range def.InputSchema.Required {
			required[name] = true
		}

		// Params in declaration order, not schema map order.
		for _, p := range tool.Params {
			marker := "optional"
			if required[p.Name] {
				marker = "required"
			}
			fmt.Fprintf(out, "      %-20s (%s) %s\n", p.Name, marker, p.Description)
		}
		if tool.Example != "" {
			fmt.Fprintf(out, "      e.g. %s\n", tool.Example)
		}
	}

	fmt.Fprintln(out)
	return nil
}
