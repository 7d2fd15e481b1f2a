package main

import (
	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/spf13/cobra"
)

type canonicalLabel struct {
	Label      string         `json:"label"`
	Emotion    domain.Emotion `json:"emotion"`
	Recognized bool           `json:"recognized"`
}

func newCanonicalizeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "canonicalize <label>...",
		Short: "Map raw emotion labels to canonical emotions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := flags.engine(engine.DefaultWindow)
			if err != nil {
				return err
			}
			out := make([]canonicalLabel, len(args))
			for i, label := range args {
				e, ok := eng.Canonicalizer.Resolve(label)
				out[i] = canonicalLabel{Label: label, Emotion: e, Recognized: ok}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
