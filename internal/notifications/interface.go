package notifications

import "github.com/lusule/fraud-app-detector/internal/models"

// NotificationInterface delivers rendered analysis output. Implementations
// consume pipeline results and pre-rendered export payloads; they never
// recompute metrics.
type NotificationInterface interface {
	SendAnalysisReport(recipientName, recipientEmail string, result *models.AnalysisResult, csvData, xlsxData []byte) error
	SendRiskAlert(result *models.AnalysisResult, csvData, xlsxData []byte) error
}
