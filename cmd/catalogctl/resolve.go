package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"visnex.global/web/internal/viewrouter"
)

type resolution struct {
	Input    string          `json:"input"`
	View     viewrouter.View `json:"view"`
	Fragment string          `json:"fragment"`
	Write    string          `json:"write"`
}

// resolveFragment starts a router on an in-memory store holding fragment and
// reports the view it lands on and the history write it made.
func resolveFragment(fragment string) resolution {
	store := viewrouter.NewMemoryStore(fragment)
	router := viewrouter.New(store)
	v := router.Start()
	router.Stop()

	res := resolution{Input: fragment, View: v, Fragment: store.Fragment(), Write: "none"}
	if writes := store.Writes(); len(writes) > 0 {
		res.Write = writes[len(writes)-1].Mode.String()
	}
	return res
}

func newResolveCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "resolve <fragment>",
		Short: "Show which view a URL fragment selects",
		Long: `resolve applies the fragment rules used by the site: a leading '#' and '/'
are stripped, the id is lowercased, and unknown ids fall back to home. A
non-canonical fragment is corrected with a history replace.`,
		Example: `  catalogctl resolve '#/Investors'
  catalogctl resolve pricing --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := resolveFragment(args[0])
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "view: %s\nfragment: %s\nwrite: %s\n", res.View, res.Fragment, res.Write)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
