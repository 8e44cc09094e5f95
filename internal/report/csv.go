package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/lusule/fraud-app-detector/internal/models"
)

// timeFormat used for exported timestamps.
const timeFormat = "2006-01-02 15:04:05"

// CSV renders export rows as a CSV document with a header line. Rows whose
// timestamp never parsed get an empty timestamp column.
func CSV(rows []models.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"timestamp", "content", "sentiment", "polarity"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		ts := ""
		if !row.Timestamp.IsZero() {
			ts = row.Timestamp.Format(timeFormat)
		}
		record := []string{
			ts,
			row.Content,
			row.Sentiment,
			strconv.FormatFloat(row.Polarity, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
