package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Populated at build time via -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = ""
)

// NewVersionCommand reports the build version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Report version information for retailcore",
		Run: func(cmd *cobra.Command, args []string) {
			rev := commit
			if rev == "" {
				if info, ok := debug.ReadBuildInfo(); ok {
					for _, setting := range info.Settings {
						if setting.Key == "vcs.revision" {
							rev = setting.Value
							break
						}
					}
				}
			}
			if rev != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "retailcore %s (%s)\n", version, rev)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "retailcore %s\n", version)
		},
	}
}
