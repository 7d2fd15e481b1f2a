// Package engine holds the canonicalization, aggregation and ritual selection
// pipeline. Every type is built once from validated configuration and is
// read-only afterwards.
package engine

import "github.com/Harshitk-cp/cloudtail/internal/domain"

// DefaultWindow is the history window used when none is configured.
const DefaultWindow = 12

// Config is the static configuration of an Engine.
type Config struct {
	Aliases AliasTable
	Catalog []domain.RitualTemplate
	Window  int
}

// DefaultConfig uses the embedded alias table and ritual catalog.
func DefaultConfig() Config {
	return Config{
		Aliases: DefaultAliases(),
		Catalog: DefaultCatalog(),
		Window:  DefaultWindow,
	}
}

// Engine bundles the three pipeline stages.
type Engine struct {
	Canonicalizer *Canonicalizer
	Aggregator    *Aggregator
	Selector      *Selector
}

// New validates cfg and builds an Engine. Invalid configuration is rejected here,
// never at first use.
func New(cfg Config) (*Engine, error) {
	canon, err := NewCanonicalizer(cfg.Aliases)
	if err != nil {
		return nil, err
	}
	agg, err := NewAggregator(canon, cfg.Window)
	if err != nil {
		return nil, err
	}
	sel, err := NewSelector(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	return &Engine{Canonicalizer: canon, Aggregator: agg, Selector: sel}, nil
}
