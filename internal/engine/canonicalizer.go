package engine

import (
	"fmt"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
)

// Canonicalizer resolves raw emotion labels into the canonical set.
// It is immutable and safe for concurrent use.
type Canonicalizer struct {
	aliases AliasTable
}

// NewCanonicalizer validates and copies the alias table.
func NewCanonicalizer(table AliasTable) (*Canonicalizer, error) {
	aliases := make(AliasTable, len(table))
	for raw, target := range table {
		key := normalizeLabel(raw)
		if key == "" {
			return nil, fmt.Errorf("alias table: empty raw label")
		}
		if !domain.ValidEmotion(string(target)) {
			return nil, fmt.Errorf("alias table: %q maps to unknown emotion %q", raw, target)
		}
		// A canonical name used as an alias must not point elsewhere.
		if domain.ValidEmotion(key) && domain.Emotion(key) != target {
			return nil, fmt.Errorf("alias table: canonical label %q cannot alias %q", key, target)
		}
		if prev, ok := aliases[key]; ok && prev != target {
			return nil, fmt.Errorf("alias table: %q maps to both %q and %q", key, prev, target)
		}
		aliases[key] = target
	}
	return &Canonicalizer{aliases: aliases}, nil
}

// Resolve returns the canonical emotion for raw and whether it was recognised.
// Unrecognised or empty labels resolve to domain.DefaultEmotion.
func (c *Canonicalizer) Resolve(raw string) (domain.Emotion, bool) {
	label := normalizeLabel(raw)
	if label == "" {
		return domain.DefaultEmotion, false
	}
	if domain.ValidEmotion(label) {
		return domain.Emotion(label), true
	}
	if e, ok := c.aliases[label]; ok {
		return e, true
	}
	return domain.DefaultEmotion, false
}

// Canonicalize is Resolve without the recognition flag. It never fails.
func (c *Canonicalizer) Canonicalize(raw string) domain.Emotion {
	e, _ := c.Resolve(raw)
	return e
}

// CanonicalizeAll maps every label, keeping order and length.
func (c *Canonicalizer) CanonicalizeAll(raws []string) domain.EmotionHistory {
	out := make(domain.EmotionHistory, len(raws))
	for i, r := range raws {
		out[i] = c.Canonicalize(r)
	}
	return out
}

// Aliases returns a copy of the alias table.
func (c *Canonicalizer) Aliases() AliasTable {
	out := make(AliasTable, len(c.aliases))
	for k, v := range c.aliases {
		out[k] = v
	}
	return out
}
