package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/lusule/fraud-app-detector/internal/config"
	"github.com/lusule/fraud-app-detector/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Disclaimer shipped with every emailed report.
const (
	DisclaimerText = "The 'Fraud App Detector' provides an analysis based on publicly available app review sentiment and does not definitively label an app as fraudulent. This tool is for informational purposes only and should not be used as the sole basis for legal or financial decisions. Always conduct thorough due diligence."
	DisclaimerLink = "https://support.google.com/googleplay/android-developer/answer/138230"
)

// Service sends analysis reports and risk alerts over SMTP
type Service struct {
	config *config.Config
}

var _ NotificationInterface = (*Service)(nil)

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// emailView is the data handed to the email templates.
type emailView struct {
	Recipient      string
	AppTitle       string
	AppID          string
	Total          int
	PositiveCount  int
	NeutralCount   int
	NegativeCount  int
	PositivePct    float64
	NeutralPct     float64
	NegativePct    float64
	AppRatingScore float64
	PlaystoreScore float64
	IsRisky        bool
	DisclaimerText string
	DisclaimerLink string
}

func newEmailView(recipient string, result *models.AnalysisResult) emailView {
	title := "Unknown App"
	if result.Metadata != nil && result.Metadata.Title != "" {
		title = result.Metadata.Title
	}

	m := result.Metrics
	return emailView{
		Recipient:      recipient,
		AppTitle:       title,
		AppID:          result.AppID,
		Total:          m.Total,
		PositiveCount:  m.Counts[models.SentimentPositive],
		NeutralCount:   m.Counts[models.SentimentNeutral],
		NegativeCount:  m.Counts[models.SentimentNegative],
		PositivePct:    m.PositivePct,
		NeutralPct:     m.NeutralPct,
		NegativePct:    m.NegativePct,
		AppRatingScore: m.AppRatingScore,
		PlaystoreScore: m.PlaystoreScore,
		IsRisky:        result.IsRisky,
		DisclaimerText: DisclaimerText,
		DisclaimerLink: DisclaimerLink,
	}
}

// SendAnalysisReport emails the analysis summary to the requesting user with
// the CSV and spreadsheet exports attached.
func (s *Service) SendAnalysisReport(recipientName, recipientEmail string, result *models.AnalysisResult, csvData, xlsxData []byte) error {
	if recipientEmail == "" {
		return fmt.Errorf("recipient email is required")
	}

	view := newEmailView(recipientName, result)
	subject := fmt.Sprintf("Fraud App Analysis Report - %s (%s)", view.AppTitle, time.Now().Format("2006-01-02 15:04"))

	if err := s.send(recipientEmail, subject, view, result.AppID, csvData, xlsxData); err != nil {
		return err
	}

	logrus.Infof("Sent analysis report for %s to %s", result.AppID, recipientEmail)
	return nil
}

// SendRiskAlert emails the configured notification address when a watched
// app trips the risk rule.
func (s *Service) SendRiskAlert(result *models.AnalysisResult, csvData, xlsxData []byte) error {
	if s.config.NotificationEmail == "" {
		logrus.Debug("No notification email configured, skipping risk alert")
		return nil
	}

	view := newEmailView("team", result)
	subject := fmt.Sprintf("Risk alert: %s (%.1f%% negative reviews)", view.AppTitle, view.NegativePct)

	if err := s.send(s.config.NotificationEmail, subject, view, result.AppID, csvData, xlsxData); err != nil {
		return err
	}

	logrus.Infof("Sent risk alert for %s", result.AppID)
	return nil
}

func (s *Service) send(to, subject string, view emailView, appID string, csvData, xlsxData []byte) error {
	htmlBody, err := buildEmailHTML(view)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", buildEmailText(view))
	m.AddAlternative("text/html", htmlBody)

	if len(csvData) > 0 {
		attach(m, fmt.Sprintf("%s_review_analysis.csv", appID), csvData)
	}
	if len(xlsxData) > 0 {
		attach(m, fmt.Sprintf("%s_full_app_summary.xlsx", appID), xlsxData)
	}

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func attach(m *gomail.Message, name string, data []byte) {
	m.Attach(name, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}))
}

var emailTemplate = template.Must(template.New("report").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h3>Dear {{.Recipient}},</h3>

    <p>Thank you for choosing <strong>Fraud App Detector</strong>. Below is the analysis of
    <strong>{{.AppTitle}}</strong> (App ID: <strong>{{.AppID}}</strong>).</p>

    <h3>Summary of Findings</h3>
    <ul>
        <li><strong>Total Reviews Analyzed:</strong> <span style="color:#3498db;">{{.Total}}</span></li>
        <li><strong>Positive Reviews:</strong> <span style="color:#27ae60;">{{.PositiveCount}} ({{printf "%.1f" .PositivePct}}%)</span></li>
        <li><strong>Neutral Reviews:</strong> <span style="color:#f39c12;">{{.NeutralCount}} ({{printf "%.1f" .NeutralPct}}%)</span></li>
        <li><strong>Negative Reviews:</strong> <span style="color:#e74c3c;">{{.NegativeCount}} ({{printf "%.1f" .NegativePct}}%)</span></li>
        <li><strong>App Rating Score:</strong> <span style="color:#3498db;">{{printf "%.1f" .AppRatingScore}}%</span></li>
        <li><strong>Play Store Score:</strong> <span style="color:#3498db;">{{printf "%.1f" .PlaystoreScore}}%</span></li>
    </ul>

    <p><strong>Fraud Alert:</strong><br>
    {{if .IsRisky}}A high number of negative reviews was detected. <strong style="color:#e74c3c;">This app may be fraudulent.</strong>{{else}}No significant fraud indicators were found.{{end}}</p>

    <p>The detailed CSV and spreadsheet reports are attached for your reference.</p>

    <hr>
    <p style="font-size:0.8em; color:#7f8c8d;"><b>Disclaimer:</b> {{.DisclaimerText}}</p>
    <p style="font-size:0.8em; color:#7f8c8d;">Reference: <a href="{{.DisclaimerLink}}">{{.DisclaimerLink}}</a></p>

    <p>Warm regards,<br><strong>The Fraud App Detector Team</strong></p>
</body>
</html>
`))

func buildEmailHTML(view emailView) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildEmailText(view emailView) string {
	verdict := "No significant fraud indicators were found."
	if view.IsRisky {
		verdict = "A high number of negative reviews was detected. This app may be fraudulent."
	}

	return fmt.Sprintf(`Fraud App Analysis Report - %s (App ID: %s)

SUMMARY
=======
Total Reviews Analyzed: %d
Positive Reviews: %d (%.1f%%)
Neutral Reviews: %d (%.1f%%)
Negative Reviews: %d (%.1f%%)
App Rating Score: %.1f%%
Play Store Score: %.1f%%

Fraud Alert: %s

The detailed CSV and spreadsheet reports are attached.

---
Disclaimer: %s
Reference: %s
`,
		view.AppTitle, view.AppID,
		view.Total,
		view.PositiveCount, view.PositivePct,
		view.NeutralCount, view.NeutralPct,
		view.NegativeCount, view.NegativePct,
		view.AppRatingScore,
		view.PlaystoreScore,
		verdict,
		DisclaimerText,
		DisclaimerLink,
	)
}
