package analysis

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lusule/fraud-app-detector/internal/models"
)

// FilterReviews returns the reviews matching the filter, preserving order.
// An empty sentiment list admits every label; zero From/To leave that side
// of the date range open. Reviews whose timestamp never parsed are excluded
// once either date bound is set.
func FilterReviews(reviews []models.Review, filter models.ReviewFilter) []models.Review {
	wantLabel := make(map[string]bool, len(filter.Sentiments))
	for _, s := range filter.Sentiments {
		wantLabel[s] = true
	}

	var filtered []models.Review
	for i := range reviews {
		r := reviews[i]
		if len(wantLabel) > 0 && !wantLabel[r.Sentiment] {
			continue
		}
		if !filter.From.IsZero() || !filter.To.IsZero() {
			if r.Timestamp.IsZero() {
				continue
			}
			if !filter.From.IsZero() && r.Timestamp.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && r.Timestamp.After(filter.To) {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// Trend buckets reviews by calendar day and sentiment label, sorted by date.
// Reviews without a parsed timestamp are skipped.
func Trend(reviews []models.Review) []models.TrendPoint {
	byDay := make(map[string]map[string]int)
	for i := range reviews {
		r := reviews[i]
		if r.Timestamp.IsZero() {
			continue
		}
		day := r.Timestamp.Format("2006-01-02")
		if byDay[day] == nil {
			byDay[day] = make(map[string]int)
		}
		byDay[day][r.Sentiment]++
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]models.TrendPoint, 0, len(days))
	for _, day := range days {
		points = append(points, models.TrendPoint{Date: day, Counts: byDay[day]})
	}
	return points
}

// stopwords excluded from the word-frequency summary.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "app": true, "are": true,
	"as": true, "at": true, "be": true, "but": true, "by": true,
	"for": true, "from": true, "has": true, "have": true, "i": true,
	"in": true, "is": true, "it": true, "its": true, "my": true,
	"of": true, "on": true, "or": true, "so": true, "that": true,
	"the": true, "this": true, "to": true, "very": true, "was": true,
	"with": true, "you": true, "your": true,
}

// TopWords returns the n most frequent non-stopword terms across review
// text, most frequent first; ties break alphabetically for stable output.
func TopWords(reviews []models.Review, n int) []models.WordCount {
	freq := make(map[string]int)
	for i := range reviews {
		words := strings.FieldsFunc(strings.ToLower(reviews[i].Content), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		for _, w := range words {
			if len(w) < 3 || stopwords[w] {
				continue
			}
			freq[w]++
		}
	}

	counts := make([]models.WordCount, 0, len(freq))
	for w, c := range freq {
		counts = append(counts, models.WordCount{Word: w, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
