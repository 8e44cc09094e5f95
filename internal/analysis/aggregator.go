package analysis

import (
	"math"

	"github.com/lusule/fraud-app-detector/internal/models"
)

// Score tiers used by presentation consumers. The cutoffs classify a
// continuous 0-100 score, so they live here rather than in a view layer.
const (
	TierFavorable   = "favorable"   // score >= 75
	TierCaution     = "caution"     // 40 <= score < 75
	TierUnfavorable = "unfavorable" // score < 40
)

// Tier hex colors, VirusTotal style.
var tierColors = map[string]string{
	TierFavorable:   "#27ae60",
	TierCaution:     "#f39c12",
	TierUnfavorable: "#e74c3c",
}

// ComputeMetrics aggregates a classified review collection into population
// statistics. A nil or rating-less metadata record yields a zero playstore
// score; an empty collection yields all-zero metrics so downstream consumers
// can distinguish "nothing to judge" from "verified safe".
func ComputeMetrics(reviews []models.Review, meta *models.AppMetadata) models.SentimentMetrics {
	counts := map[string]int{
		models.SentimentPositive: 0,
		models.SentimentNeutral:  0,
		models.SentimentNegative: 0,
	}
	for i := range reviews {
		counts[reviews[i].Sentiment]++
	}

	metrics := models.SentimentMetrics{
		Total:  len(reviews),
		Counts: counts,
	}

	if meta != nil && meta.Score != nil {
		// Store ratings come on the 0-5 scale; bring them onto the same
		// 0-100 scale as the other metrics.
		metrics.PlaystoreScore = *meta.Score * 20
	}

	if metrics.Total == 0 {
		return metrics
	}

	total := float64(metrics.Total)
	metrics.PositivePct = float64(counts[models.SentimentPositive]) / total * 100
	metrics.NegativePct = float64(counts[models.SentimentNegative]) / total * 100
	metrics.NeutralPct = float64(counts[models.SentimentNeutral]) / total * 100

	// Neutral reviews are credited toward the positive side in proportion to
	// how the non-neutral reviews lean. The formula is preserved as-is for
	// compatibility with existing reports.
	posScore := metrics.PositivePct
	if metrics.PositivePct+metrics.NegativePct > 0 {
		posScore = metrics.PositivePct + metrics.NeutralPct*(metrics.PositivePct/(metrics.PositivePct+metrics.NegativePct))
	}
	metrics.AppRatingScore = math.Min(100, posScore)

	return metrics
}

// EvaluateRisk applies the risk decision rule: the app is flagged when the
// negative percentage strictly exceeds the alert threshold. Nothing else
// feeds the boolean.
func EvaluateRisk(metrics models.SentimentMetrics, alertThreshold float64) bool {
	return metrics.NegativePct > alertThreshold
}

// ScoreTier classifies a 0-100 score into one of the three display tiers.
func ScoreTier(score float64) string {
	switch {
	case score >= 75:
		return TierFavorable
	case score >= 40:
		return TierCaution
	default:
		return TierUnfavorable
	}
}

// TierColor returns the hex color of a score's tier.
func TierColor(score float64) string {
	return tierColors[ScoreTier(score)]
}
