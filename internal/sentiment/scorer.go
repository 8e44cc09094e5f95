// Package sentiment implements the review classification pipeline: a lexical
// fraud-indicator override, a pluggable polarity model, threshold
// classification, and batch processing of review collections.
//
// All scoring functions are pure and safe for concurrent use.
package sentiment

import (
	"strings"
	"unicode"
)

// PolarityModel scores free text on the polarity scale, -1.0 (negative) to
// +1.0 (positive). Implementations must return 0 for empty input and must
// not keep state between calls; the pipeline treats the model as a swappable
// dependency.
type PolarityModel interface {
	Score(text string) float64
}

// LexiconModel is the default PolarityModel: it averages the valences of
// recognized words, flipping the sign of words preceded by a negator.
// Unrecognized text scores 0.
type LexiconModel struct{}

var _ PolarityModel = LexiconModel{}

// Score returns the average valence of recognized words in text.
func (LexiconModel) Score(text string) float64 {
	if text == "" {
		return 0
	}

	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var sum float64
	scored := 0

	for i, word := range words {
		valence, ok := valences[word]
		if !ok {
			continue
		}
		if i > 0 && negators[words[i-1]] {
			valence = -valence
		}
		sum += valence
		scored++
	}

	if scored == 0 {
		return 0
	}

	avg := sum / float64(scored)
	// Averaging keeps the value in range; clamp anyway so a future lexicon
	// entry outside [-1,1] cannot leak past the contract.
	if avg > 1 {
		return 1
	}
	if avg < -1 {
		return -1
	}
	return avg
}

// tokenize lowercases text and splits it into words, dropping apostrophes so
// contractions ("don't") collapse to their negator form ("dont").
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\'' || r == '’' {
			return -1
		}
		return r
	}, strings.ToLower(text))

	return strings.FieldsFunc(cleaned, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ScoreReview applies the lexical override before the polarity model. This
// is the single entry point for turning review text into a polarity value.
func ScoreReview(model PolarityModel, text string) float64 {
	if text == "" {
		return 0
	}
	if ContainsFraudIndicator(text) {
		return OverridePolarity
	}
	return model.Score(text)
}
