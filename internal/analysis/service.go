package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/lusule/fraud-app-detector/internal/config"
	"github.com/lusule/fraud-app-detector/internal/models"
	"github.com/lusule/fraud-app-detector/internal/notifications"
	"github.com/lusule/fraud-app-detector/internal/report"
	"github.com/lusule/fraud-app-detector/internal/sentiment"
	"github.com/lusule/fraud-app-detector/internal/storage"
	"github.com/sirupsen/logrus"
)

// Directory is the app directory service consumed by the pipeline. Both
// operations degrade to "no data" on failure; retry and timeout policy
// belongs to the implementation, not to this service.
type Directory interface {
	AppDetails(ctx context.Context, appID, country string) (*models.AppMetadata, error)
	Reviews(ctx context.Context, appID, country string, max int) ([]models.Review, error)
}

// Service runs the review analysis pipeline end to end
type Service struct {
	config    *config.Config
	directory Directory
	storage   storage.ArchiveInterface
	notifier  notifications.NotificationInterface
	processor *sentiment.Processor
	metrics   *Metrics
	mu        sync.RWMutex
}

// Metrics holds run statistics for the /metrics endpoint.
type Metrics struct {
	TotalRuns          int            `json:"total_runs"`
	RiskyVerdicts      int            `json:"risky_verdicts"`
	LastRun            time.Time      `json:"last_run"`
	LastRunDuration    string         `json:"last_run_duration"`
	LastAppID          string         `json:"last_app_id"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	ErrorCount         int            `json:"error_count"`
}

// NewService creates the analysis service. A nil model selects the built-in
// lexicon polarity model.
func NewService(cfg *config.Config, directory Directory, archive storage.ArchiveInterface, notifier notifications.NotificationInterface, model sentiment.PolarityModel) *Service {
	return &Service{
		config:    cfg,
		directory: directory,
		storage:   archive,
		notifier:  notifier,
		processor: sentiment.NewProcessor(model),
		metrics: &Metrics{
			SentimentBreakdown: make(map[string]int),
		},
	}
}

var appIDFromURL = regexp.MustCompile(`id=([a-zA-Z0-9._]+)`)

// ExtractAppID pulls the app identifier out of a Play Store URL, or returns
// the trimmed input unchanged when it is already an identifier.
func ExtractAppID(input string) string {
	if m := appIDFromURL.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return strings.TrimSpace(input)
}

// AnalyzeApp runs the full pipeline for one app: fetch metadata and reviews,
// classify, aggregate, archive. Directory failures degrade to absent
// metadata and an empty review collection; only structural processing
// errors abort the run.
func (s *Service) AnalyzeApp(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	start := time.Now()
	req = s.normalize(req)

	logrus.Infof("Analyzing app %s (country=%s, max_reviews=%d)", req.AppID, req.Country, req.MaxReviews)

	meta, err := s.directory.AppDetails(ctx, req.AppID, req.Country)
	if err != nil {
		logrus.Warnf("Could not fetch metadata for %s: %v", req.AppID, err)
		meta = nil
	}

	reviews, err := s.directory.Reviews(ctx, req.AppID, req.Country, req.MaxReviews)
	if err != nil {
		logrus.Errorf("Could not fetch reviews for %s: %v", req.AppID, err)
		reviews = nil
	}

	if err := s.processor.Process(reviews, req.Thresholds, nil); err != nil {
		s.recordError()
		return nil, fmt.Errorf("processing reviews for %s: %w", req.AppID, err)
	}

	metrics := ComputeMetrics(reviews, meta)
	result := &models.AnalysisResult{
		AppID:       req.AppID,
		Metadata:    meta,
		Reviews:     reviews,
		Metrics:     metrics,
		IsRisky:     EvaluateRisk(metrics, req.Thresholds.Alert),
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.archive(result); err != nil {
		logrus.Errorf("Failed to archive analysis of %s: %v", req.AppID, err)
	}

	s.updateMetrics(result, time.Since(start))
	logrus.Infof("Analyzed %s: %d reviews, %.1f%% negative, risky=%t (took %v)",
		req.AppID, metrics.Total, metrics.NegativePct, result.IsRisky, time.Since(start))

	return result, nil
}

// CompareApps runs two independent pipeline invocations and pairs the
// results. An app without reviews contributes all-zero metrics; neither run
// influences the other.
func (s *Service) CompareApps(ctx context.Context, req models.ComparisonRequest) (*models.ComparisonResult, error) {
	first, err := s.AnalyzeApp(ctx, models.AnalysisRequest{
		AppID: req.AppID1, Country: req.Country, MaxReviews: req.MaxReviews, Thresholds: req.Thresholds,
	})
	if err != nil {
		return nil, err
	}

	second, err := s.AnalyzeApp(ctx, models.AnalysisRequest{
		AppID: req.AppID2, Country: req.Country, MaxReviews: req.MaxReviews, Thresholds: req.Thresholds,
	})
	if err != nil {
		return nil, err
	}

	return &models.ComparisonResult{
		App1:        first,
		App2:        second,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// RunWatchlist re-analyzes every watched app and emails a risk alert with
// the full report attached for each one that trips the decision rule.
func (s *Service) RunWatchlist() error {
	if len(s.config.WatchedApps) == 0 {
		logrus.Debug("Watchlist empty, nothing to rescan")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	logrus.Infof("Rescanning %d watched apps", len(s.config.WatchedApps))

	failures := 0
	for _, appID := range s.config.WatchedApps {
		result, err := s.AnalyzeApp(ctx, models.AnalysisRequest{AppID: appID})
		if err != nil {
			logrus.Errorf("Watchlist rescan of %s failed: %v", appID, err)
			failures++
			continue
		}

		if !result.IsRisky {
			continue
		}

		csvData, err := report.CSV(report.Rows(result.Reviews))
		if err != nil {
			logrus.Errorf("Failed to build CSV for %s: %v", appID, err)
			failures++
			continue
		}
		xlsxData, err := report.Workbook(result)
		if err != nil {
			logrus.Errorf("Failed to build workbook for %s: %v", appID, err)
			failures++
			continue
		}

		if err := s.notifier.SendRiskAlert(result, csvData, xlsxData.Bytes()); err != nil {
			logrus.Errorf("Failed to send risk alert for %s: %v", appID, err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("watchlist rescan finished with %d failures", failures)
	}
	return nil
}

// normalize fills unset request fields from the configured defaults.
func (s *Service) normalize(req models.AnalysisRequest) models.AnalysisRequest {
	req.AppID = ExtractAppID(req.AppID)
	if req.Country == "" {
		req.Country = s.config.Country
	}
	if req.MaxReviews <= 0 {
		req.MaxReviews = s.config.MaxReviews
	}
	if req.Thresholds == (models.RiskThresholds{}) {
		req.Thresholds = models.RiskThresholds{
			Positive: s.config.PosThreshold,
			Negative: s.config.NegThreshold,
			Alert:    s.config.AlertThreshold,
		}
	}
	return req
}

func (s *Service) archive(result *models.AnalysisResult) error {
	if s.storage == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	filename := fmt.Sprintf("analysis-%s-%s.json", result.AppID, result.GeneratedAt.Format("2006-01-02-15-04-05"))
	return s.storage.Store(filename, data)
}

func (s *Service) updateMetrics(result *models.AnalysisResult, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalRuns++
	if result.IsRisky {
		s.metrics.RiskyVerdicts++
	}
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.LastAppID = result.AppID

	s.metrics.SentimentBreakdown = make(map[string]int)
	for label, count := range result.Metrics.Counts {
		s.metrics.SentimentBreakdown[label] = count
	}
}

func (s *Service) recordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.ErrorCount++
}

// GetMetrics returns current run statistics as JSON.
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
