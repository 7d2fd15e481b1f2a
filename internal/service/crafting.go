package service

import (
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/engine"
)

type CraftingService struct {
	canon *engine.Canonicalizer
}

func NewCraftingService(canon *engine.Canonicalizer) *CraftingService {
	return &CraftingService{canon: canon}
}

// Craft returns the recipe for a raw emotion label. Unknown labels craft the
// default emotion's item.
func (s *CraftingService) Craft(label string) (domain.Recipe, error) {
	if strings.TrimSpace(label) == "" {
		return domain.Recipe{}, ErrInvalidEmotion
	}
	return engine.RecipeFor(s.canon.Canonicalize(label)), nil
}

// Preview lists one recipe per emotion in priority order.
func (s *CraftingService) Preview() []domain.Recipe {
	emotions := domain.Emotions()
	out := make([]domain.Recipe, len(emotions))
	for i, e := range emotions {
		out[i] = engine.RecipeFor(e)
	}
	return out
}
