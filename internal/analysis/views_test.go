package analysis

import (
	"testing"
	"time"

	"github.com/lusule/fraud-app-detector/internal/models"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestFilterReviewsBySentiment(t *testing.T) {
	reviews := []models.Review{
		{Content: "a", Sentiment: models.SentimentPositive},
		{Content: "b", Sentiment: models.SentimentNegative},
		{Content: "c", Sentiment: models.SentimentNeutral},
		{Content: "d", Sentiment: models.SentimentNegative},
	}

	filtered := FilterReviews(reviews, models.ReviewFilter{
		Sentiments: []string{models.SentimentNegative},
	})

	assert.Len(t, filtered, 2)
	assert.Equal(t, "b", filtered[0].Content)
	assert.Equal(t, "d", filtered[1].Content)
}

func TestFilterReviewsEmptyFilterAdmitsAll(t *testing.T) {
	reviews := []models.Review{
		{Content: "a", Sentiment: models.SentimentPositive},
		{Content: "b"},
	}

	filtered := FilterReviews(reviews, models.ReviewFilter{})

	assert.Len(t, filtered, 2)
}

func TestFilterReviewsByDateRange(t *testing.T) {
	reviews := []models.Review{
		{Content: "old", Timestamp: day("2024-01-01")},
		{Content: "mid", Timestamp: day("2024-02-15")},
		{Content: "new", Timestamp: day("2024-03-30")},
		{Content: "unparsed"}, // zero timestamp
	}

	filtered := FilterReviews(reviews, models.ReviewFilter{
		From: day("2024-02-01"),
		To:   day("2024-03-01"),
	})

	assert.Len(t, filtered, 1)
	assert.Equal(t, "mid", filtered[0].Content)
}

func TestFilterReviewsOpenEndedRange(t *testing.T) {
	reviews := []models.Review{
		{Content: "old", Timestamp: day("2024-01-01")},
		{Content: "new", Timestamp: day("2024-03-30")},
		{Content: "unparsed"},
	}

	filtered := FilterReviews(reviews, models.ReviewFilter{From: day("2024-02-01")})

	// The unparsed review is excluded once any date bound is set.
	assert.Len(t, filtered, 1)
	assert.Equal(t, "new", filtered[0].Content)
}

func TestTrend(t *testing.T) {
	reviews := []models.Review{
		{Sentiment: models.SentimentPositive, Timestamp: day("2024-03-02")},
		{Sentiment: models.SentimentNegative, Timestamp: day("2024-03-01")},
		{Sentiment: models.SentimentPositive, Timestamp: day("2024-03-01")},
		{Sentiment: models.SentimentPositive}, // skipped, no timestamp
	}

	points := Trend(reviews)

	assert.Len(t, points, 2)
	assert.Equal(t, "2024-03-01", points[0].Date)
	assert.Equal(t, 1, points[0].Counts[models.SentimentPositive])
	assert.Equal(t, 1, points[0].Counts[models.SentimentNegative])
	assert.Equal(t, "2024-03-02", points[1].Date)
	assert.Equal(t, 1, points[1].Counts[models.SentimentPositive])
}

func TestTopWords(t *testing.T) {
	reviews := []models.Review{
		{Content: "Total scam, the app is a scam"},
		{Content: "scam artists, avoid avoid"},
		{Content: "ok"}, // too short to count
	}

	words := TopWords(reviews, 2)

	assert.Len(t, words, 2)
	assert.Equal(t, models.WordCount{Word: "scam", Count: 3}, words[0])
	assert.Equal(t, models.WordCount{Word: "avoid", Count: 2}, words[1])
}

func TestTopWordsSkipsStopwords(t *testing.T) {
	reviews := []models.Review{
		{Content: "the app is very very good"},
	}

	words := TopWords(reviews, 10)

	assert.Equal(t, []models.WordCount{{Word: "good", Count: 1}}, words)
}

func TestTopWordsTieBreaksAlphabetically(t *testing.T) {
	reviews := []models.Review{
		{Content: "zebra apple zebra apple"},
	}

	words := TopWords(reviews, 10)

	assert.Equal(t, "apple", words[0].Word)
	assert.Equal(t, "zebra", words[1].Word)
}
