package main

import (
	"encoding/json"
	"io"

	"github.com/Harshitk-cp/cloudtail/internal/buildconfig"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	catalog string
	aliases string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "cloudtail",
		Short: "Inspect the emotion, state and ritual pipeline offline",
		Long: "cloudtail runs canonicalization, aggregation and ritual selection\n" +
			"against the embedded configuration or the files given with --catalog and --aliases.",
		Version:       buildconfig.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.catalog, "catalog", "", "ritual catalog YAML (default: embedded)")
	pf.StringVar(&flags.aliases, "aliases", "", "alias table YAML (default: embedded)")

	root.AddCommand(
		newCanonicalizeCmd(flags),
		newAggregateCmd(flags),
		newSelectCmd(flags),
		newCatalogCmd(flags),
	)
	return root
}

// engine builds an engine from the flags. Both loaders fall back to the
// embedded files for an empty path.
func (f *rootFlags) engine(window int) (*engine.Engine, error) {
	catalog, err := engine.LoadCatalog(f.catalog)
	if err != nil {
		return nil, err
	}
	aliases, err := engine.LoadAliases(f.aliases)
	if err != nil {
		return nil, err
	}
	return engine.New(engine.Config{Aliases: aliases, Catalog: catalog, Window: window})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
