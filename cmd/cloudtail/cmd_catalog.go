package main

import (
	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/spf13/cobra"
)

type catalogEntry struct {
	ID            string                `json:"ritual_id"`
	Category      domain.RitualCategory `json:"ritual_type"`
	RequiredState domain.StateTag       `json:"required_state"`
	EmotionPath   []domain.Emotion      `json:"emotion_path"`
	Steps         int                   `json:"steps"`
}

func newCatalogCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Validate and list the ritual catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := flags.engine(engine.DefaultWindow)
			if err != nil {
				return err
			}
			catalog := eng.Selector.Catalog()
			out := make([]catalogEntry, len(catalog))
			for i, t := range catalog {
				out[i] = catalogEntry{
					ID:            t.ID,
					Category:      t.Category,
					RequiredState: t.RequiredState,
					EmotionPath:   t.EmotionPath,
					Steps:         len(t.Script),
				}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
