package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
)

const (
	huggingFaceInferenceURL = "https://api-inference.huggingface.co/models/"
	huggingFaceModel        = "bhadresh-savani/distilbert-base-uncased-emotion"
)

// HuggingFaceClient calls a hosted text-classification model and returns its
// highest scoring label.
type HuggingFaceClient struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

func NewHuggingFaceClient(apiKey, model string) *HuggingFaceClient {
	if model == "" {
		model = huggingFaceModel
	}
	return &HuggingFaceClient{
		apiKey:     apiKey,
		url:        huggingFaceInferenceURL + model,
		httpClient: &http.Client{},
	}
}

type huggingFaceRequest struct {
	Inputs string `json:"inputs"`
}

type huggingFaceScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type huggingFaceError struct {
	Error string `json:"error"`
}

func (c *HuggingFaceClient) Classify(ctx context.Context, text string) (domain.Classification, error) {
	body, err := json.Marshal(huggingFaceRequest{Inputs: text})
	if err != nil {
		return domain.Classification{}, fmt.Errorf("marshal huggingface request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.Classification{}, fmt.Errorf("create huggingface request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("huggingface request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("read huggingface response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr huggingFaceError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return domain.Classification{}, fmt.Errorf("huggingface API returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return domain.Classification{}, fmt.Errorf("huggingface API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	scores, err := decodeScores(respBody)
	if err != nil {
		return domain.Classification{}, err
	}
	if len(scores) == 0 {
		return domain.Classification{}, fmt.Errorf("huggingface API returned no labels")
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return domain.Classification{
		Label:      strings.ToLower(best.Label),
		Confidence: clamp01(best.Score),
	}, nil
}

// decodeScores accepts both the nested [[...]] shape returned for a single
// input and a flat list.
func decodeScores(body []byte) ([]huggingFaceScore, error) {
	var nested [][]huggingFaceScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}
	var flat []huggingFaceScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("unmarshal huggingface response: %w", err)
	}
	return flat, nil
}
