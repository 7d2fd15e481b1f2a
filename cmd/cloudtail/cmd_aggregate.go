package main

import (
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/spf13/cobra"
)

type aggregateOutput struct {
	domain.SymbolicState
	Planet domain.Planet `json:"planet"`
	Ready  bool          `json:"ready_for_transition"`
}

func newAggregateCmd(flags *rootFlags) *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "aggregate <label[:override]>...",
		Short: "Aggregate a history, most recent first, into a symbolic state",
		Long: "Each argument is a detected label, optionally followed by ':' and a manual override.\n" +
			"Arguments are read most recent first. With no arguments the neutral state is printed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := flags.engine(window)
			if err != nil {
				return err
			}
			state := eng.Aggregator.Aggregate(parseEntries(args))
			return writeJSON(cmd.OutOrStdout(), aggregateOutput{
				SymbolicState: state,
				Planet:        engine.PlanetFor(state.Dominant),
				Ready:         engine.Ready(state.History),
			})
		},
	}
	cmd.Flags().IntVar(&window, "window", engine.DefaultWindow, "number of most recent entries to aggregate (0 = all)")
	return cmd
}

func parseEntries(args []string) []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, len(args))
	for i, arg := range args {
		label, override, _ := strings.Cut(arg, ":")
		entries[i] = domain.HistoryEntry{Label: label, ManualOverride: override}
	}
	return entries
}
