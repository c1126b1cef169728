package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"retailcore/internal/tools"
)

// NewToolsCommand prints the tool interface as JSON.
func NewToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool descriptors as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tools.DefaultRegistry().Descriptors())
		},
	}
}
