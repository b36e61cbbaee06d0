// Package main is catalogctl, a command line view of the bundled catalogs. It runs
// the same search, facet and fragment logic as the web server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Query the Visnex catalogs from the command line",
		Long: `catalogctl runs catalog queries, facet counts and view fragment resolution
against the catalogs bundled into the binary.

Catalogs: startups, investors, incubators, opportunities, resources, stories,
growth-tools.`,
		SilenceUsage: true,
	}
	root.AddCommand(newQueryCmd(), newFacetsCmd(), newResolveCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of catalogctl",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "catalogctl %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
