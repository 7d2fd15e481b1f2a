package engine

import (
	"fmt"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
)

// Aggregator reduces a history snapshot to a single symbolic state.
// It is immutable and safe for concurrent use.
type Aggregator struct {
	canon  *Canonicalizer
	window int
}

// NewAggregator creates an aggregator over the most recent window entries.
// A window of zero means the whole snapshot is used.
func NewAggregator(c *Canonicalizer, window int) (*Aggregator, error) {
	if c == nil {
		return nil, fmt.Errorf("aggregator: canonicalizer is required")
	}
	if window < 0 {
		return nil, fmt.Errorf("aggregator: window must be >= 0, got %d", window)
	}
	return &Aggregator{canon: c, window: window}, nil
}

// WithWindow returns an aggregator sharing the canonicalizer with a different window.
func (a *Aggregator) WithWindow(window int) (*Aggregator, error) {
	return NewAggregator(a.canon, window)
}

func (a *Aggregator) Window() int {
	return a.window
}

// EffectiveLabel returns the label that counts for an entry: the manual
// override when present, the detected label otherwise.
func EffectiveLabel(e domain.HistoryEntry) string {
	if strings.TrimSpace(e.ManualOverride) != "" {
		return e.ManualOverride
	}
	return e.Label
}

// History canonicalizes the windowed snapshot, keeping every entry.
// Entries are expected most recent first.
func (a *Aggregator) History(entries []domain.HistoryEntry) domain.EmotionHistory {
	if a.window > 0 && len(entries) > a.window {
		entries = entries[:a.window]
	}
	h := make(domain.EmotionHistory, len(entries))
	for i, e := range entries {
		h[i] = a.canon.Canonicalize(EffectiveLabel(e))
	}
	return h
}

// Aggregate computes the symbolic state of a history snapshot.
func (a *Aggregator) Aggregate(entries []domain.HistoryEntry) domain.SymbolicState {
	return a.AggregateHistory(a.History(entries))
}

// AggregateHistory computes the symbolic state of an already canonical history.
func (a *Aggregator) AggregateHistory(h domain.EmotionHistory) domain.SymbolicState {
	if len(h) == 0 {
		return NeutralState()
	}

	dominant := Dominant(h)
	history := make(domain.EmotionHistory, len(h))
	copy(history, h)

	return domain.SymbolicState{
		StateTag: domain.StateFor(dominant),
		Dominant: dominant,
		History:  history,
		Palette:  PaletteFor(dominant),
		Theme:    ThemeFor(dominant),
	}
}

// Dominant returns the most frequent emotion in h, ties broken by priority.
// An empty history yields domain.DefaultEmotion.
func Dominant(h domain.EmotionHistory) domain.Emotion {
	counts := make(map[domain.Emotion]int, 4)
	for _, e := range h {
		counts[e]++
	}

	dominant := domain.DefaultEmotion
	best := 0
	// Walking in priority order with a strict comparison keeps the
	// higher-priority emotion on ties.
	for _, e := range domain.Emotions() {
		if counts[e] > best {
			dominant = e
			best = counts[e]
		}
	}
	return dominant
}

// NeutralState is the state of an empty history.
func NeutralState() domain.SymbolicState {
	return domain.SymbolicState{
		StateTag: domain.StateNeutral,
		Dominant: domain.DefaultEmotion,
		History:  domain.EmotionHistory{},
		Palette:  neutralPalette(),
		Theme:    neutralTheme,
	}
}
