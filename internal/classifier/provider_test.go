package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		want     any
		wantErr  bool
	}{
		{"", "", &KeywordClassifier{}, false},
		{ProviderKeyword, "", &KeywordClassifier{}, false},
		{ProviderMock, "", &MockClassifier{}, false},
		{ProviderOpenAI, "sk-test", &OpenAIClient{}, false},
		{ProviderOpenAI, "", nil, true},
		{ProviderAnthropic, "key", &AnthropicClient{}, false},
		{ProviderAnthropic, "", nil, true},
		{ProviderHuggingFace, "hf_key", &HuggingFaceClient{}, false},
		{ProviderHuggingFace, "", nil, true},
		{"gemini", "key", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.provider+"/"+tt.apiKey, func(t *testing.T) {
			c, err := NewClient(tt.provider, tt.apiKey, "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
		})
	}
}

func TestNewClient_ModelDefaults(t *testing.T) {
	hf := NewHuggingFaceClient("key", "")
	assert.Equal(t, huggingFaceInferenceURL+huggingFaceModel, hf.url)

	hf = NewHuggingFaceClient("key", "someone/custom")
	assert.Equal(t, huggingFaceInferenceURL+"someone/custom", hf.url)

	assert.Equal(t, anthropicModel, NewAnthropicClient("key", "").model)
	assert.Equal(t, openAIModel, NewOpenAIClient("key", "").model)
	assert.Equal(t, "gpt-4.1", NewOpenAIClient("key", "gpt-4.1").model)
}

func TestParseLabelResponse(t *testing.T) {
	got, err := parseLabelResponse("```json\n{\"label\": \" Grief \", \"confidence\": 1.7}\n```")
	require.NoError(t, err)
	assert.Equal(t, "grief", got.Label)
	assert.Equal(t, 1.0, got.Confidence)

	got, err = parseLabelResponse(`{"label":"joy","confidence":-0.2}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Confidence)

	_, err = parseLabelResponse(`{"label":"","confidence":0.5}`)
	assert.Error(t, err)

	_, err = parseLabelResponse("I think it's sad")
	assert.Error(t, err)
}

func TestLabelSchema(t *testing.T) {
	assert.Equal(t, "object", labelSchema["type"])
	assert.Equal(t, false, labelSchema["additionalProperties"])
	assert.Equal(t, []string{"confidence", "label"}, labelSchema["required"])

	props, ok := labelSchema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "label")
	assert.Contains(t, props, "confidence")
}
