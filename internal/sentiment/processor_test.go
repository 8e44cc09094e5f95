package sentiment

import (
	"testing"
	"time"

	"github.com/lusule/fraud-app-detector/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	processor := NewProcessor(nil)
	reviews := []models.Review{
		{Content: "This app is a total scam, uninstall now", PostedAt: "2025-06-01 10:30:00"},
		{Content: "Great app, works perfectly", PostedAt: "2025-06-02T08:00:00Z"},
		{Content: "", PostedAt: "2025-06-03"},
	}

	err := processor.Process(reviews, models.DefaultThresholds(), nil)
	require.NoError(t, err)

	// Lexical override forces -0.8 and the default thresholds make it Negative.
	assert.Equal(t, OverridePolarity, reviews[0].Polarity)
	assert.Equal(t, models.SentimentNegative, reviews[0].Sentiment)

	assert.Greater(t, reviews[1].Polarity, 0.1)
	assert.Equal(t, models.SentimentPositive, reviews[1].Sentiment)

	// Empty text coerces to neutral, never fails the batch.
	assert.Zero(t, reviews[2].Polarity)
	assert.Equal(t, models.SentimentNeutral, reviews[2].Sentiment)

	// Timestamps parsed in place, order preserved.
	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), reviews[0].Timestamp)
	assert.Equal(t, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), reviews[1].Timestamp)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), reviews[2].Timestamp)
}

func TestProcessor_ProcessIsIdempotent(t *testing.T) {
	processor := NewProcessor(nil)
	thresholds := models.DefaultThresholds()
	reviews := []models.Review{
		{Content: "Love it, fast and reliable", PostedAt: "2025-01-15"},
		{Content: "Slow and annoying", PostedAt: "2025-01-16"},
	}

	require.NoError(t, processor.Process(reviews, thresholds, nil))
	first := make([]models.Review, len(reviews))
	copy(first, reviews)

	require.NoError(t, processor.Process(reviews, thresholds, nil))
	assert.Equal(t, first, reviews)
}

func TestProcessor_ProgressIsMonotoneAndCompletes(t *testing.T) {
	processor := NewProcessor(fixedModel(0.5))

	reviews := make([]models.Review, 250)
	for i := range reviews {
		reviews[i] = models.Review{Content: "fast", PostedAt: "2025-03-01"}
	}

	var fractions []float64
	err := processor.Process(reviews, models.DefaultThresholds(), func(f float64) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)

	// 250 reviews in batches of 100 reports three times.
	require.Len(t, fractions, 3)
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
}

func TestProcessor_EmptyCollection(t *testing.T) {
	processor := NewProcessor(nil)

	var fractions []float64
	err := processor.Process(nil, models.DefaultThresholds(), func(f float64) {
		fractions = append(fractions, f)
	})

	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, fractions)
}

func TestProcessor_StructuralValidation(t *testing.T) {
	processor := NewProcessor(nil)

	tests := []struct {
		name     string
		reviews  []models.Review
		expected error
	}{
		{
			name: "No record carries text",
			reviews: []models.Review{
				{PostedAt: "2025-01-01"},
				{PostedAt: "2025-01-02"},
			},
			expected: ErrNoContentField,
		},
		{
			name: "No record carries a timestamp",
			reviews: []models.Review{
				{Content: "nice app"},
				{Content: "fast"},
			},
			expected: ErrNoTimestampField,
		},
		{
			name: "One record with both fields is enough",
			reviews: []models.Review{
				{},
				{Content: "nice app", PostedAt: "2025-01-01"},
			},
			expected: nil,
		},
		{
			name: "Pre-parsed timestamp satisfies the timestamp precondition",
			reviews: []models.Review{
				{Content: "nice app", Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := processor.Process(tt.reviews, models.DefaultThresholds(), nil)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessor_MalformedTimestampTolerated(t *testing.T) {
	processor := NewProcessor(nil)
	reviews := []models.Review{
		{Content: "nice app", PostedAt: "2025-01-01"},
		{Content: "fast", PostedAt: "not a date"},
	}

	require.NoError(t, processor.Process(reviews, models.DefaultThresholds(), nil))
	assert.False(t, reviews[0].Timestamp.IsZero())
	assert.True(t, reviews[1].Timestamp.IsZero())
}
