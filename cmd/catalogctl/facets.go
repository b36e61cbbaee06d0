package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"visnex.global/web/internal/handlers"
)

func newFacetsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "facets <catalog> <dimension>",
		Short: "Count catalog records per value of a dimension",
		Example: `  catalogctl facets startups stage
  catalogctl facets resources category --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := lookupCatalog(args[0])
			if err != nil {
				return err
			}
			if def.facets == nil {
				return fmt.Errorf("catalog %q has no facet counts", args[0])
			}
			svc, err := handlers.NewStaticServices(nil)
			if err != nil {
				return fmt.Errorf("load catalogs: %w", err)
			}
			facets, err := def.facets(cmd.Context(), svc, args[1])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), facets)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, f := range facets {
				fmt.Fprintf(tw, "%s\t%d\n", f.Value, f.Count)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output facets as JSON")
	return cmd
}
