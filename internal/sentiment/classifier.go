package sentiment

import "github.com/lusule/fraud-app-detector/internal/models"

// Classify maps a polarity value to a sentiment label using strict
// inequalities: above the positive threshold is Positive, below the negative
// threshold is Negative, everything else (both boundaries included) is
// Neutral. Threshold ordering is the caller's responsibility; inverted or
// overlapping thresholds are applied literally.
func Classify(polarity, posThreshold, negThreshold float64) string {
	switch {
	case polarity > posThreshold:
		return models.SentimentPositive
	case polarity < negThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
