package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const openAIModel = "gpt-4o-mini"

// OpenAIClient classifies text with the Responses API and a strict JSON schema.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) *OpenAIClient {
	if model == "" {
		model = openAIModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client, model: model}
}

var labelSchema = generateSchema[labelResponse]()

func (c *OpenAIClient) Classify(ctx context.Context, text string) (domain.Classification, error) {
	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(100),
		Instructions:    openai.String(classifyPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "EmotionLabel",
					Schema:      labelSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Emotion label JSON"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("openai classify: %w", err)
	}
	return parseLabelResponse(resp.OutputText())
}

// generateSchema reflects T into the strict schema shape OpenAI accepts:
// every object closed and every property required.
func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var schema map[string]any
	if err := json.Unmarshal(b, &schema); err != nil {
		panic(err)
	}
	closeObjects(schema)
	return schema
}

func closeObjects(schema map[string]any) {
	props, ok := schema["properties"].(map[string]any)
	if schema["type"] == "object" {
		schema["additionalProperties"] = false
		if ok && len(props) > 0 {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			sort.Strings(required)
			schema["required"] = required
		}
	}
	for _, p := range props {
		if m, ok := p.(map[string]any); ok {
			closeObjects(m)
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		closeObjects(items)
	}
}
