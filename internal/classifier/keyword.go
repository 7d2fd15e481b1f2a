package classifier

import (
	"context"
	"math"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
)

type keywordRule struct {
	label    string
	keywords []string
}

// Rules are checked in order; earlier labels win ties.
var keywordRules = []keywordRule{
	{"sadness", []string{"loss", "cry", "empty", "lonely", "miss", "grief"}},
	{"guilt", []string{"sorry", "regret", "should", "blame", "fault"}},
	{"gratitude", []string{"thank", "grateful", "appreciate", "blessing"}},
	{"nostalgia", []string{"remember", "childhood", "once", "old", "used to"}},
	{"peace", []string{"calm", "quiet", "still", "accept", "release"}},
}

const keywordFallback = "peace"

// KeywordClassifier labels text by counting keyword occurrences. It needs no
// network access and is the default provider.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(_ context.Context, text string) (domain.Classification, error) {
	lowered := strings.ToLower(text)

	label := keywordFallback
	hits := 0
	for _, rule := range keywordRules {
		n := 0
		for _, kw := range rule.keywords {
			n += strings.Count(lowered, kw)
		}
		if n > hits {
			label = rule.label
			hits = n
		}
	}
	if hits == 0 {
		hits = 1
	}

	conf := math.Min(1.0, 0.2+0.1*float64(hits))
	return domain.Classification{Label: label, Confidence: math.Round(conf*1000) / 1000}, nil
}
