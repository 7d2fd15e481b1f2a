package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
	"github.com/spf13/cobra"
)

var errNoRitual = errors.New("no suitable ritual found")

type selectFlags struct {
	state     string
	history   []string
	category  string
	preferred string
	override  bool
	all       bool
}

func newSelectCmd(flags *rootFlags) *cobra.Command {
	sf := &selectFlags{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select a ritual for a history and state",
		Long: "Select runs ritual matching and the transition guard. --state defaults to the\n" +
			"state aggregated from --history. --all prints every surviving ritual, best first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelect(cmd, flags, sf)
		},
	}

	f := cmd.Flags()
	f.StringVar(&sf.state, "state", "", "current state tag (neutral, transition or an emotion)")
	f.StringSliceVar(&sf.history, "history", nil, "raw emotion labels, comma separated")
	f.StringVar(&sf.category, "category", "", "preferred ritual type (release, honor, seal, reflect)")
	f.StringVar(&sf.preferred, "preferred", "", "ritual id to use when it exists")
	f.BoolVar(&sf.override, "override", false, "bypass the transition readiness guard")
	f.BoolVar(&sf.all, "all", false, "print the full ranking instead of the best match")
	return cmd
}

func runSelect(cmd *cobra.Command, flags *rootFlags, sf *selectFlags) error {
	if sf.state != "" && !domain.ValidStateTag(sf.state) {
		return fmt.Errorf("invalid --state %q", sf.state)
	}
	if sf.category != "" && !domain.ValidRitualCategory(sf.category) {
		return fmt.Errorf("invalid --category %q", sf.category)
	}

	eng, err := flags.engine(0)
	if err != nil {
		return err
	}

	history := eng.Canonicalizer.CanonicalizeAll(trimAll(sf.history))
	state := domain.StateTag(sf.state)
	if state == "" {
		state = eng.Aggregator.AggregateHistory(history).StateTag
	}

	req := domain.SelectionRequest{
		History:      history,
		CurrentState: state,
		Category:     domain.RitualCategory(sf.category),
		PreferredID:  sf.preferred,
		UserOverride: sf.override,
	}

	if sf.all {
		ranked := eng.Selector.Rank(req)
		if len(ranked) == 0 {
			return errNoRitual
		}
		return writeJSON(cmd.OutOrStdout(), ranked)
	}

	ritual, ok := eng.Selector.Select(req)
	if !ok {
		return fmt.Errorf("%w (state %s, ready %t)", errNoRitual, state, engine.Ready(history))
	}
	return writeJSON(cmd.OutOrStdout(), ritual)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
