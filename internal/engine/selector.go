package engine

import (
	"fmt"
	"sort"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
)

// ReadinessThreshold is the share of the unresolved emotion at or above which
// a history is not ready for a transition ritual.
const ReadinessThreshold = 0.5

// Selector matches selection requests against an immutable ritual catalog.
type Selector struct {
	catalog []domain.RitualTemplate
	byID    map[string]int
}

// NewSelector validates and copies the catalog.
func NewSelector(catalog []domain.RitualTemplate) (*Selector, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("ritual catalog is empty")
	}

	s := &Selector{
		catalog: make([]domain.RitualTemplate, 0, len(catalog)),
		byID:    make(map[string]int, len(catalog)),
	}
	for i, t := range catalog {
		if err := validateTemplate(t); err != nil {
			return nil, fmt.Errorf("ritual catalog entry %d: %w", i, err)
		}
		if _, dup := s.byID[t.ID]; dup {
			return nil, fmt.Errorf("ritual catalog entry %d: duplicate ritual_id %q", i, t.ID)
		}
		s.byID[t.ID] = len(s.catalog)
		s.catalog = append(s.catalog, cloneTemplate(t))
	}
	return s, nil
}

func validateTemplate(t domain.RitualTemplate) error {
	if t.ID == "" {
		return fmt.Errorf("ritual_id is required")
	}
	if !domain.ValidRitualCategory(string(t.Category)) {
		return fmt.Errorf("ritual %q: invalid ritual_type %q", t.ID, t.Category)
	}
	if !domain.ValidStateTag(string(t.RequiredState)) {
		return fmt.Errorf("ritual %q: invalid required_state %q", t.ID, t.RequiredState)
	}
	for _, e := range t.EmotionPath {
		if !domain.ValidEmotion(string(e)) {
			return fmt.Errorf("ritual %q: invalid emotion %q in emotion_path", t.ID, e)
		}
	}
	if len(t.Script) == 0 {
		return fmt.Errorf("ritual %q: script is empty", t.ID)
	}
	return nil
}

// Catalog returns a copy of the catalog in its original order.
func (s *Selector) Catalog() []domain.RitualTemplate {
	out := make([]domain.RitualTemplate, len(s.catalog))
	for i, t := range s.catalog {
		out[i] = cloneTemplate(t)
	}
	return out
}

// Get returns the template with the given id.
func (s *Selector) Get(id string) (domain.RitualTemplate, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.RitualTemplate{}, false
	}
	return cloneTemplate(s.catalog[i]), true
}

// Ready reports whether a history allows transition rituals: the share of
// domain.UnresolvedEmotion must be strictly below ReadinessThreshold.
// An empty history is never ready.
func Ready(h domain.EmotionHistory) bool {
	if len(h) == 0 {
		return false
	}
	return h.Share(domain.UnresolvedEmotion) < ReadinessThreshold
}

// MatchScore counts the template's emotion path entries present in h.
func MatchScore(t domain.RitualTemplate, h domain.EmotionHistory) int {
	n := 0
	for _, e := range t.EmotionPath {
		if h.Contains(e) {
			n++
		}
	}
	return n
}

// Select returns the best ritual for req. The boolean is false when nothing matches.
func (s *Selector) Select(req domain.SelectionRequest) (domain.RitualTemplate, bool) {
	if req.PreferredID != "" {
		if t, ok := s.Get(req.PreferredID); ok {
			return t, true
		}
	}
	ranked := s.Rank(req)
	if len(ranked) == 0 {
		return domain.RitualTemplate{}, false
	}
	return ranked[0], true
}

// Rank returns every ritual that survives matching and the ethics guard,
// best first. Ties keep catalog order. PreferredID is ignored.
func (s *Selector) Rank(req domain.SelectionRequest) []domain.RitualTemplate {
	candidates := s.match(req, true)
	if len(candidates) == 0 && req.Category != "" {
		candidates = s.match(req, false)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return MatchScore(s.catalog[candidates[i]], req.History) > MatchScore(s.catalog[candidates[j]], req.History)
	})

	out := make([]domain.RitualTemplate, len(candidates))
	for i, idx := range candidates {
		out[i] = cloneTemplate(s.catalog[idx])
	}
	return out
}

// match returns catalog indexes passing the path, state, category and guard checks.
func (s *Selector) match(req domain.SelectionRequest, useCategory bool) []int {
	ready := Ready(req.History)
	var out []int
	for i, t := range s.catalog {
		if t.RequiredState != req.CurrentState {
			continue
		}
		if !pathSatisfied(t.EmotionPath, req.History) {
			continue
		}
		if useCategory && req.Category != "" && t.Category != req.Category {
			continue
		}
		if t.RequiredState == domain.StateTransition && !ready && !req.UserOverride {
			continue
		}
		out = append(out, i)
	}
	return out
}

func pathSatisfied(path []domain.Emotion, h domain.EmotionHistory) bool {
	for _, e := range path {
		if !h.Contains(e) {
			return false
		}
	}
	return true
}

func cloneTemplate(t domain.RitualTemplate) domain.RitualTemplate {
	c := t
	c.EmotionPath = append([]domain.Emotion{}, t.EmotionPath...)
	c.Script = append([]domain.ScriptStep{}, t.Script...)
	c.EffectTags = append([]string{}, t.EffectTags...)
	return c
}
