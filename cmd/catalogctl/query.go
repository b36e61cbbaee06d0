package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/handlers"
)

func newQueryCmd() *cobra.Command {
	var (
		term    string
		filters []string
		sortKey string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "query <catalog>",
		Short: "Search, filter and sort a catalog",
		Long: `query runs one catalog query. Filters are dimension=value pairs; repeat a
dimension to match any of its values. Unknown sort keys keep catalog order.`,
		Example: `  catalogctl query startups --filter industry=FinTech --filter industry=HealthTech
  catalogctl query investors --filter type=angel --sort portfolio-size --json
  catalogctl query stories --filter industry=ai --filter achievement=growth`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := lookupCatalog(args[0])
			if err != nil {
				return err
			}
			parsed, err := parseFilters(filters)
			if err != nil {
				return err
			}
			svc, err := handlers.NewStaticServices(nil)
			if err != nil {
				return fmt.Errorf("load catalogs: %w", err)
			}
			res, err := def.search(cmd.Context(), svc, catalog.Query{Term: term, Sort: sortKey}, parsed)
			if err != nil {
				return err
			}
			res.Catalog = strings.ToLower(args[0])
			res.Count = len(res.rows)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return writeTable(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&term, "q", "q", "", "free-text search term")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "dimension=value filter (repeatable)")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "", "sort key")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, res result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.header, "\t"))
	for _, row := range res.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	summary := fmt.Sprintf("%d of %d", res.Count, res.Total)
	if res.Sort != "" {
		summary += " sorted by " + res.Sort
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
