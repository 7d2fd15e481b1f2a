package domain

import "time"

// StateTag identifies a symbolic world state. Every canonical emotion is a
// state tag; neutral and transition are the two extra states.
type StateTag string

const (
	StateNeutral StateTag = "neutral"
	// StateTransition is the sensitive closure state guarded by readiness checks.
	StateTransition StateTag = "transition"
)

// StateFor returns the state tag of a dominant emotion.
func StateFor(e Emotion) StateTag {
	return StateTag(e)
}

func ValidStateTag(s string) bool {
	if s == string(StateNeutral) || s == string(StateTransition) {
		return true
	}
	return ValidEmotion(s)
}

// SymbolicState is the aggregated world state for a snapshot of history.
type SymbolicState struct {
	StateTag StateTag       `json:"state_tag"`
	Dominant Emotion        `json:"dominant_emotion"`
	History  EmotionHistory `json:"emotion_history"`
	Palette  []string       `json:"color_palette"`
	Theme    string         `json:"visual_theme"`
}

// IsNeutral reports whether the state was produced from an empty history.
func (s SymbolicState) IsNeutral() bool {
	return s.StateTag == StateNeutral
}

// PlanetKey names one of the planets the client renders.
type PlanetKey string

const (
	PlanetAmbered PlanetKey = "ambered"
	PlanetRippled PlanetKey = "rippled"
	PlanetSpiral  PlanetKey = "spiral"
	PlanetWoven   PlanetKey = "woven"
)

// Planet is the client-facing world for a canonical emotion.
type Planet struct {
	Index       int       `json:"planet_index"`
	Key         PlanetKey `json:"planet_key"`
	DisplayName string    `json:"display_name"`
}

// PlanetStatus is a symbolic state stamped with its planet and generation time.
type PlanetStatus struct {
	SymbolicState
	Planet      Planet    `json:"planet"`
	LastUpdated time.Time `json:"last_updated"`
}
