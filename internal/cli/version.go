package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if jsonOutput {
			fmt.Fprintf(out, `{"version":"%s","commit":"%s","date":"%s"}`+"\n", Version, GitCommit, BuildDate)
		} else {
			fmt.Fprintf(out, "errnogen version %s\n", Version)
			if IsVerbose() {
				fmt.Fprintf(out, "  commit: %s\n", GitCommit)
				fmt.Fprintf(out, "  built:  %s\n", BuildDate)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
