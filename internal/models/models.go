package models

import "time"

// Sentiment labels attached to processed reviews.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Review represents one user-submitted review of an app
type Review struct {
	Content   string    `json:"content"`
	PostedAt  string    `json:"at"`              // raw timestamp as delivered by the directory service
	Timestamp time.Time `json:"timestamp"`       // parsed form, set by the processor
	Stars     int       `json:"stars,omitempty"` // star rating the reviewer gave, 1-5
	Polarity  float64   `json:"polarity"`        // -1.0 to 1.0, set by the processor
	Sentiment string    `json:"sentiment"`       // "Positive", "Neutral", "Negative"
}

// AppMetadata describes one application as reported by the app directory
// service. The whole record may be absent when the service fails; Score may
// be nil when the store has not rated the app yet.
type AppMetadata struct {
	AppID     string   `json:"app_id"`
	Title     string   `json:"title"`
	Icon      string   `json:"icon"`
	Developer string   `json:"developer"`
	Category  string   `json:"genre"`
	Installs  string   `json:"installs"`
	Released  string   `json:"released"`
	Score     *float64 `json:"score"` // store rating on the 0-5 scale
}

// RiskThresholds configures one analysis run.
type RiskThresholds struct {
	Positive float64 `json:"pos_threshold"`   // 0..1, polarity above this is Positive
	Negative float64 `json:"neg_threshold"`   // -1..0, polarity below this is Negative
	Alert    float64 `json:"alert_threshold"` // 0..100, % negative that trips the risk flag
}

// DefaultThresholds returns the standard analysis settings.
func DefaultThresholds() RiskThresholds {
	return RiskThresholds{Positive: 0.1, Negative: -0.1, Alert: 30}
}

// SentimentMetrics aggregates a classified review collection.
type SentimentMetrics struct {
	Total          int            `json:"total"`
	Counts         map[string]int `json:"counts"`
	PositivePct    float64        `json:"positive_pct"`
	NegativePct    float64        `json:"negative_pct"`
	NeutralPct     float64        `json:"neutral_pct"`
	AppRatingScore float64        `json:"app_rating_score"` // 0-100, derived from the percentages
	PlaystoreScore float64        `json:"playstore_score"`  // 0-100, store rating * 20
}

// AnalysisRequest carries the caller-supplied inputs of one pipeline run.
type AnalysisRequest struct {
	AppID      string         `json:"app_id"`
	Country    string         `json:"country"`
	MaxReviews int            `json:"max_reviews"`
	Thresholds RiskThresholds `json:"thresholds"`
}

// AnalysisResult is the complete output of one pipeline run.
type AnalysisResult struct {
	AppID       string           `json:"app_id"`
	Metadata    *AppMetadata     `json:"metadata,omitempty"`
	Reviews     []Review         `json:"reviews"`
	Metrics     SentimentMetrics `json:"metrics"`
	IsRisky     bool             `json:"is_risky"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// ComparisonRequest names the two apps to compare.
type ComparisonRequest struct {
	AppID1     string         `json:"app_id_1"`
	AppID2     string         `json:"app_id_2"`
	Country    string         `json:"country"`
	MaxReviews int            `json:"max_reviews"`
	Thresholds RiskThresholds `json:"thresholds"`
}

// ComparisonResult pairs two independent analysis runs. No values are merged
// or normalized across the two apps.
type ComparisonResult struct {
	App1        *AnalysisResult `json:"app1"`
	App2        *AnalysisResult `json:"app2"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// ExportRow is the flat tabular shape consumed by the CSV and spreadsheet
// exporters.
type ExportRow struct {
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	Sentiment string    `json:"sentiment"`
	Polarity  float64   `json:"polarity"`
}

// ReviewFilter narrows a processed collection before aggregation or export.
// Zero values mean "no restriction".
type ReviewFilter struct {
	Sentiments []string  `json:"sentiments,omitempty"`
	From       time.Time `json:"from,omitempty"`
	To         time.Time `json:"to,omitempty"`
}

// TrendPoint holds per-label review counts for one calendar day.
type TrendPoint struct {
	Date   string         `json:"date"` // YYYY-MM-DD
	Counts map[string]int `json:"counts"`
}

// WordCount is one entry of the word-frequency summary built from review
// text.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
