// Package classifier turns free text into a raw emotion label with a
// confidence score. Labels are not canonical; callers pass them through the
// engine's canonicalizer.
package classifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
)

// Provider constants
const (
	ProviderKeyword     = "keyword"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderHuggingFace = "huggingface"
	ProviderMock        = "mock"
)

// NewClient creates an emotion classifier based on the provider name.
// Returns an error if the provider is unknown or the API key is empty for a
// hosted provider. An empty model selects the provider default.
func NewClient(provider, apiKey, model string) (domain.EmotionClassifier, error) {
	switch provider {
	case ProviderKeyword, "":
		return NewKeywordClassifier(), nil

	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIClient(apiKey, model), nil

	case ProviderAnthropic:
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for Anthropic provider")
		}
		return NewAnthropicClient(apiKey, model), nil

	case ProviderHuggingFace:
		if apiKey == "" {
			return nil, fmt.Errorf("HUGGINGFACE_API_KEY is required for Hugging Face provider")
		}
		return NewHuggingFaceClient(apiKey, model), nil

	case ProviderMock:
		return NewMockClassifier(), nil

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (valid options: keyword, openai, anthropic, huggingface, mock)", provider)
	}
}

const classifyPrompt = `You label the emotional tone of a short personal memory.
Answer with a single lowercase emotion word (for example: sadness, grief, guilt, regret, nostalgia, longing, gratitude, joy, love, peace) and a confidence between 0 and 1.`

// labelResponse is the structured answer requested from chat models.
type labelResponse struct {
	Label      string  `json:"label" jsonschema:"description=Single lowercase emotion word"`
	Confidence float64 `json:"confidence" jsonschema:"description=Confidence between 0 and 1"`
}

// parseLabelResponse decodes a model answer, tolerating markdown fences.
func parseLabelResponse(raw string) (domain.Classification, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var out labelResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return domain.Classification{}, fmt.Errorf("parse classifier output: %w", err)
	}
	label := strings.ToLower(strings.TrimSpace(out.Label))
	if label == "" {
		return domain.Classification{}, fmt.Errorf("parse classifier output: empty label")
	}
	return domain.Classification{Label: label, Confidence: clamp01(out.Confidence)}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
