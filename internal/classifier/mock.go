package classifier

import (
	"context"
	"sync"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
)

// MockClassifier is a configurable classifier for testing.
// Set Response and Error to control what Classify returns.
type MockClassifier struct {
	Response domain.Classification
	Error    error

	mu sync.Mutex
	// Call tracking for assertions
	Calls []string
}

func NewMockClassifier() *MockClassifier {
	return &MockClassifier{
		Response: domain.Classification{Label: string(domain.DefaultEmotion), Confidence: 0.5},
	}
}

func (c *MockClassifier) Classify(_ context.Context, text string) (domain.Classification, error) {
	c.mu.Lock()
	c.Calls = append(c.Calls, text)
	c.mu.Unlock()
	if c.Error != nil {
		return domain.Classification{}, c.Error
	}
	return c.Response, nil
}
