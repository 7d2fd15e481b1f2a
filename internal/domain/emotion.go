package domain

// Emotion is one of the canonical emotion categories every raw label resolves to.
type Emotion string

const (
	EmotionSadness   Emotion = "sadness"
	EmotionGuilt     Emotion = "guilt"
	EmotionNostalgia Emotion = "nostalgia"
	EmotionGratitude Emotion = "gratitude"
)

// DefaultEmotion is used for any label that cannot be resolved.
// Ambiguous input is never placed in a negative bucket.
const DefaultEmotion = EmotionGratitude

// UnresolvedEmotion is the emotion whose share of a history decides whether
// the user is ready for a transition ritual.
const UnresolvedEmotion = EmotionSadness

// priorityOrder is the total order used wherever ties between emotions are broken.
// Earlier entries win.
var priorityOrder = [...]Emotion{
	EmotionGratitude,
	EmotionGuilt,
	EmotionNostalgia,
	EmotionSadness,
}

// Emotions returns the canonical set in priority order.
func Emotions() []Emotion {
	out := make([]Emotion, len(priorityOrder))
	copy(out, priorityOrder[:])
	return out
}

// Priority returns the tie-break rank of e (lower wins). Unknown values rank last.
func (e Emotion) Priority() int {
	for i, p := range priorityOrder {
		if p == e {
			return i
		}
	}
	return len(priorityOrder)
}

func ValidEmotion(e string) bool {
	switch Emotion(e) {
	case EmotionSadness, EmotionGuilt, EmotionNostalgia, EmotionGratitude:
		return true
	}
	return false
}

// EmotionHistory is an ordered sequence of canonical emotions, most recent first.
type EmotionHistory []Emotion

// Count returns how many times e occurs in h.
func (h EmotionHistory) Count(e Emotion) int {
	n := 0
	for _, x := range h {
		if x == e {
			n++
		}
	}
	return n
}

func (h EmotionHistory) Contains(e Emotion) bool {
	for _, x := range h {
		if x == e {
			return true
		}
	}
	return false
}

// Share returns the proportion of h made up of e. An empty history has share 0.
func (h EmotionHistory) Share(e Emotion) float64 {
	if len(h) == 0 {
		return 0
	}
	return float64(h.Count(e)) / float64(len(h))
}

// Strings returns the history as plain labels, for logging and storage.
func (h EmotionHistory) Strings() []string {
	out := make([]string, len(h))
	for i, e := range h {
		out[i] = string(e)
	}
	return out
}

// Classification is the raw output of a text classifier.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Essence is the symbolic material extracted from a memory.
type Essence struct {
	Type       Emotion  `json:"type"`
	Element    string   `json:"element"`
	EffectTags []string `json:"effect_tags"`
	Value      float64  `json:"value"`
}

// Recipe is a symbolic item that can be crafted from an emotion.
type Recipe struct {
	Emotion       Emotion  `json:"emotion"`
	ItemName      string   `json:"item_name"`
	Element       string   `json:"element"`
	MaterialsUsed []string `json:"materials_used"`
	EffectTags    []string `json:"effect_tags"`
	Description   string   `json:"description"`
}
