package domain

// RitualCategory groups rituals by the kind of symbolic action they perform.
type RitualCategory string

const (
	RitualRelease RitualCategory = "release"
	RitualHonor   RitualCategory = "honor"
	RitualSeal    RitualCategory = "seal"
	RitualReflect RitualCategory = "reflect"
)

func ValidRitualCategory(c string) bool {
	switch RitualCategory(c) {
	case RitualRelease, RitualHonor, RitualSeal, RitualReflect:
		return true
	}
	return false
}

// ScriptStep is one symbolic action in a ritual script.
type ScriptStep struct {
	Action string `json:"action" yaml:"action"`
	Object string `json:"object" yaml:"object"`
	Line   string `json:"line" yaml:"line"`
}

// RitualTemplate is a catalog entry gated by emotion history and state.
type RitualTemplate struct {
	ID            string         `json:"ritual_id" yaml:"ritual_id"`
	Category      RitualCategory `json:"ritual_type" yaml:"ritual_type"`
	EmotionPath   []Emotion      `json:"emotion_path" yaml:"emotion_path"`
	RequiredState StateTag       `json:"required_state" yaml:"required_state"`
	Script        []ScriptStep   `json:"script" yaml:"script"`
	EffectTags    []string       `json:"effect_tags" yaml:"effect_tags"`
}

// SelectionRequest is the input to ritual selection.
type SelectionRequest struct {
	History      EmotionHistory
	CurrentState StateTag
	// Category is a soft filter; empty means any.
	Category RitualCategory
	// PreferredID short-circuits matching when it names a catalog entry.
	PreferredID  string
	UserOverride bool
}
