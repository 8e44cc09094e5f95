package sentiment

import (
	"errors"
	"time"

	"github.com/lusule/fraud-app-detector/internal/models"
)

// batchSize controls how often progress is reported. Batching has no effect
// on the computed values.
const batchSize = 100

// Structural precondition failures. These indicate malformed upstream data
// and abort the whole batch; they are never raised for individual items.
var (
	ErrNoContentField   = errors.New("review collection carries no content field")
	ErrNoTimestampField = errors.New("review collection carries no timestamp field")
)

// ProgressFunc receives a completion fraction. Values are non-decreasing and
// reach 1.0 once every review has been processed.
type ProgressFunc func(fraction float64)

// timestampLayouts are tried in order when parsing raw review timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Processor classifies review collections with a polarity model.
type Processor struct {
	model PolarityModel
}

// NewProcessor creates a processor backed by model, defaulting to the
// built-in lexicon model when model is nil.
func NewProcessor(model PolarityModel) *Processor {
	if model == nil {
		model = LexiconModel{}
	}
	return &Processor{model: model}
}

// Process mutates each review in place: polarity (lexical override first,
// model second), sentiment label, and parsed timestamp. Order is preserved
// and reprocessing with the same thresholds yields identical values.
//
// A non-empty collection in which no record carries review text fails with
// ErrNoContentField; one in which no record carries a timestamp fails with
// ErrNoTimestampField. Individual empty or malformed items are tolerated and
// score neutral.
func (p *Processor) Process(reviews []models.Review, thresholds models.RiskThresholds, progress ProgressFunc) error {
	total := len(reviews)
	if total == 0 {
		if progress != nil {
			progress(1)
		}
		return nil
	}

	if err := validateCollection(reviews); err != nil {
		return err
	}

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}

		for i := start; i < end; i++ {
			r := &reviews[i]
			r.Polarity = ScoreReview(p.model, r.Content)
			r.Sentiment = Classify(r.Polarity, thresholds.Positive, thresholds.Negative)
			if r.Timestamp.IsZero() {
				r.Timestamp = parseTimestamp(r.PostedAt)
			}
		}

		if progress != nil {
			progress(float64(end) / float64(total))
		}
	}

	return nil
}

// validateCollection checks the structural preconditions: at least one
// record must carry review text and at least one must carry a timestamp.
// With typed records a missing upstream field decodes as a zero value on
// every row, which is what this detects.
func validateCollection(reviews []models.Review) error {
	hasContent := false
	hasTimestamp := false

	for i := range reviews {
		if reviews[i].Content != "" {
			hasContent = true
		}
		if reviews[i].PostedAt != "" || !reviews[i].Timestamp.IsZero() {
			hasTimestamp = true
		}
		if hasContent && hasTimestamp {
			return nil
		}
	}

	if !hasContent {
		return ErrNoContentField
	}
	return ErrNoTimestampField
}

// parseTimestamp parses a raw timestamp, returning the zero time when no
// layout matches. Parse failures are per-item conditions and never abort
// the batch.
func parseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
