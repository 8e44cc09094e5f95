// Package report serializes pipeline outputs into the flat tabular and
// spreadsheet formats consumed by downstream delivery. No decision logic
// lives here; everything is a rendering of already-computed data.
package report

import "github.com/lusule/fraud-app-detector/internal/models"

// Rows flattens a processed review collection into export rows, preserving
// order.
func Rows(reviews []models.Review) []models.ExportRow {
	rows := make([]models.ExportRow, len(reviews))
	for i := range reviews {
		rows[i] = models.ExportRow{
			Timestamp: reviews[i].Timestamp,
			Content:   reviews[i].Content,
			Sentiment: reviews[i].Sentiment,
			Polarity:  reviews[i].Polarity,
		}
	}
	return rows
}
