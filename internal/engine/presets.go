package engine

import (
	"math"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
)

const neutralTheme = "default"

func neutralPalette() []string {
	return []string{"#CCCCCC"}
}

// PaletteFor returns the color tokens for a dominant emotion.
func PaletteFor(e domain.Emotion) []string {
	switch e {
	case domain.EmotionSadness:
		return []string{"#3E3E72", "#5B5B99"}
	case domain.EmotionNostalgia:
		return []string{"#AACFCF", "#DDB0A9"}
	case domain.EmotionGuilt:
		return []string{"#B00020", "#FF8A80"}
	case domain.EmotionGratitude:
		return []string{"#FFF176", "#FFD54F"}
	}
	return neutralPalette()
}

// ThemeFor returns the visual theme identifier for a dominant emotion.
func ThemeFor(e domain.Emotion) string {
	switch e {
	case domain.EmotionSadness:
		return "ashen"
	case domain.EmotionNostalgia:
		return "sepia_memory"
	case domain.EmotionGuilt:
		return "storm"
	case domain.EmotionGratitude:
		return "lightburst"
	}
	return neutralTheme
}

// Planets lists every planet in client order.
func Planets() []domain.Planet {
	return []domain.Planet{
		{Index: 0, Key: domain.PlanetAmbered, DisplayName: "Ambered Haven"},
		{Index: 1, Key: domain.PlanetRippled, DisplayName: "Rippled Cove"},
		{Index: 2, Key: domain.PlanetSpiral, DisplayName: "Spiral Vale"},
		{Index: 3, Key: domain.PlanetWoven, DisplayName: "Woven Garden"},
	}
}

// PlanetFor returns the planet the client shows for an emotion.
func PlanetFor(e domain.Emotion) domain.Planet {
	p := Planets()
	switch e {
	case domain.EmotionGuilt:
		return p[1]
	case domain.EmotionSadness:
		return p[2]
	case domain.EmotionNostalgia:
		return p[3]
	}
	return p[0]
}

// ElementFor returns the symbolic element an emotion crystallizes into.
func ElementFor(e domain.Emotion) string {
	switch e {
	case domain.EmotionSadness:
		return "CrystalShard"
	case domain.EmotionGuilt:
		return "RustIngot"
	case domain.EmotionNostalgia:
		return "EchoBloom"
	case domain.EmotionGratitude:
		return "LightDust"
	}
	return "LightDust"
}

// EffectTagsFor returns the usage hints attached to an emotion's essence.
func EffectTagsFor(e domain.Emotion) []string {
	switch e {
	case domain.EmotionSadness, domain.EmotionNostalgia:
		return []string{"ritual", "memory"}
	}
	return []string{"healing", "ambient"}
}

type bonusRule struct {
	keywords []string
	bonus    float64
}

func bonusFor(e domain.Emotion) bonusRule {
	switch e {
	case domain.EmotionGuilt:
		return bonusRule{keywords: []string{"sorry"}, bonus: 0.1}
	case domain.EmotionNostalgia:
		return bonusRule{keywords: []string{"sunset", "home", "beach", "smell"}, bonus: 0.1}
	}
	return bonusRule{}
}

// EssenceFor builds the symbolic essence of a classified memory.
// Value is min(1, 0.2 + confidence + keyword bonus), rounded to three places.
func EssenceFor(e domain.Emotion, text string, confidence float64) domain.Essence {
	lowered := strings.ToLower(text)
	rule := bonusFor(e)
	bonus := 0.0
	for _, kw := range rule.keywords {
		if strings.Contains(lowered, kw) {
			bonus = rule.bonus
			break
		}
	}
	value := math.Min(1.0, 0.2+confidence+bonus)
	return domain.Essence{
		Type:       e,
		Element:    ElementFor(e),
		EffectTags: EffectTagsFor(e),
		Value:      math.Round(value*1000) / 1000,
	}
}

// RecipeFor returns the item crafted from an emotion.
func RecipeFor(e domain.Emotion) domain.Recipe {
	r := domain.Recipe{Emotion: e, Element: ElementFor(e)}
	switch e {
	case domain.EmotionSadness:
		r.ItemName = "Rain Echo Chime"
		r.MaterialsUsed = []string{"AshDust"}
	case domain.EmotionGuilt:
		r.ItemName = "Mirror of Regret"
		r.MaterialsUsed = []string{"Tarnish"}
	case domain.EmotionNostalgia:
		r.ItemName = "Echo Lantern"
		r.MaterialsUsed = []string{"MemoryPetal"}
	default:
		r.Emotion = domain.EmotionGratitude
		r.ItemName = "Sun Thread Locket"
		r.MaterialsUsed = []string{"WarmGlow"}
	}
	r.EffectTags = []string{"symbolic", string(r.Emotion)}
	r.Description = "A symbolic item crafted from " + string(r.Emotion) + "."
	return r
}
