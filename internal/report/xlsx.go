package report

import (
	"bytes"
	"fmt"

	"github.com/lusule/fraud-app-detector/internal/models"
	"github.com/tealeg/xlsx/v3"
)

// Workbook builds the full single-app spreadsheet: a summary sheet with app
// details, sentiment metrics and the risk verdict, and a reviews sheet with
// one row per classified review.
func Workbook(result *models.AnalysisResult) (*bytes.Buffer, error) {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}
	writeSummarySheet(summary, result)

	reviews, err := file.AddSheet("Reviews")
	if err != nil {
		return nil, fmt.Errorf("failed to add reviews sheet: %w", err)
	}
	writeReviewSheet(reviews, Rows(result.Reviews))

	buf := new(bytes.Buffer)
	if err := file.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeSummarySheet(sheet *xlsx.Sheet, result *models.AnalysisResult) {
	addPair := func(name, value string) {
		row := sheet.AddRow()
		row.AddCell().Value = name
		row.AddCell().Value = value
	}

	meta := result.Metadata
	title, developer, category, installs, released := "N/A", "N/A", "N/A", "N/A", "N/A"
	storeScore := "N/A"
	if meta != nil {
		title, developer, category = meta.Title, meta.Developer, meta.Category
		installs, released = meta.Installs, meta.Released
		if meta.Score != nil {
			storeScore = fmt.Sprintf("%.2f", *meta.Score)
		}
	}

	m := result.Metrics
	addPair("App ID", result.AppID)
	addPair("App Name", title)
	addPair("Developer", developer)
	addPair("Category", category)
	addPair("Installs", installs)
	addPair("Released", released)
	addPair("Play Store Score (out of 5)", storeScore)
	addPair("Generated", result.GeneratedAt.Format(timeFormat))
	sheet.AddRow()

	addPair("Total Reviews", fmt.Sprintf("%d", m.Total))
	addPair("Positive", fmt.Sprintf("%d (%.1f%%)", m.Counts[models.SentimentPositive], m.PositivePct))
	addPair("Neutral", fmt.Sprintf("%d (%.1f%%)", m.Counts[models.SentimentNeutral], m.NeutralPct))
	addPair("Negative", fmt.Sprintf("%d (%.1f%%)", m.Counts[models.SentimentNegative], m.NegativePct))
	addPair("App Rating Score (%)", fmt.Sprintf("%.1f", m.AppRatingScore))
	addPair("Play Store Score (%)", fmt.Sprintf("%.1f", m.PlaystoreScore))

	verdict := "No significant risk indicators found"
	if result.IsRisky {
		verdict = "Strong indicators of potential risk identified"
	}
	addPair("Risk Verdict", verdict)
}

func writeReviewSheet(sheet *xlsx.Sheet, rows []models.ExportRow) {
	header := sheet.AddRow()
	for _, h := range []string{"Date/Time", "Content", "Sentiment", "Polarity"} {
		header.AddCell().Value = h
	}

	for _, r := range rows {
		row := sheet.AddRow()

		cell := row.AddCell()
		if !r.Timestamp.IsZero() {
			cell.SetDate(r.Timestamp)
		}

		row.AddCell().Value = r.Content
		row.AddCell().Value = r.Sentiment

		cell = row.AddCell()
		cell.SetFloat(r.Polarity)
	}
}

// ComparisonWorkbook builds the two-app comparison spreadsheet: one sheet of
// side-by-side metrics, with no cross-app derivation.
func ComparisonWorkbook(result *models.ComparisonResult) (*bytes.Buffer, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Comparison")
	if err != nil {
		return nil, fmt.Errorf("failed to add comparison sheet: %w", err)
	}

	title := func(r *models.AnalysisResult, fallback string) string {
		if r.Metadata != nil && r.Metadata.Title != "" {
			return r.Metadata.Title
		}
		if r.AppID != "" {
			return r.AppID
		}
		return fallback
	}
	storeScore := func(r *models.AnalysisResult) string {
		if r.Metadata != nil && r.Metadata.Score != nil {
			return fmt.Sprintf("%.2f", *r.Metadata.Score)
		}
		return "N/A"
	}

	addTriple := func(name, v1, v2 string) {
		row := sheet.AddRow()
		row.AddCell().Value = name
		row.AddCell().Value = v1
		row.AddCell().Value = v2
	}

	a, b := result.App1, result.App2
	addTriple("Metric", title(a, "App 1"), title(b, "App 2"))
	addTriple("Play Store Score (out of 5)", storeScore(a), storeScore(b))
	addTriple("App Rating Score (%)", fmt.Sprintf("%.1f", a.Metrics.AppRatingScore), fmt.Sprintf("%.1f", b.Metrics.AppRatingScore))
	addTriple("Positive Sentiment (%)", fmt.Sprintf("%.1f", a.Metrics.PositivePct), fmt.Sprintf("%.1f", b.Metrics.PositivePct))
	addTriple("Negative Sentiment (%)", fmt.Sprintf("%.1f", a.Metrics.NegativePct), fmt.Sprintf("%.1f", b.Metrics.NegativePct))
	addTriple("Neutral Sentiment (%)", fmt.Sprintf("%.1f", a.Metrics.NeutralPct), fmt.Sprintf("%.1f", b.Metrics.NeutralPct))
	addTriple("Total Reviews Analyzed", fmt.Sprintf("%d", a.Metrics.Total), fmt.Sprintf("%d", b.Metrics.Total))

	buf := new(bytes.Buffer)
	if err := file.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write comparison workbook: %w", err)
	}
	return buf, nil
}
