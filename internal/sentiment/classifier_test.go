package sentiment

import (
	"testing"

	"github.com/lusule/fraud-app-detector/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		polarity float64
		pos      float64
		neg      float64
		expected string
	}{
		{"Clearly positive", 0.6, 0.1, -0.1, models.SentimentPositive},
		{"Clearly negative", -0.6, 0.1, -0.1, models.SentimentNegative},
		{"Zero is neutral", 0, 0.1, -0.1, models.SentimentNeutral},
		{"Positive boundary resolves neutral", 0.1, 0.1, -0.1, models.SentimentNeutral},
		{"Negative boundary resolves neutral", -0.1, 0.1, -0.1, models.SentimentNeutral},
		{"Just above positive threshold", 0.10001, 0.1, -0.1, models.SentimentPositive},
		{"Just below negative threshold", -0.10001, 0.1, -0.1, models.SentimentNegative},
		{"Override polarity with defaults", OverridePolarity, 0.1, -0.1, models.SentimentNegative},
		// Misconfigured thresholds are applied literally, not validated.
		{"Inverted thresholds, positive branch wins first", 0.5, -0.2, 0.2, models.SentimentPositive},
		{"Inverted thresholds, neutral band inverted", -0.1, -0.2, 0.2, models.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.polarity, tt.pos, tt.neg))
		})
	}
}
