package scheduler

import (
	"github.com/lusule/fraud-app-detector/internal/analysis"
	"github.com/lusule/fraud-app-detector/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service schedules watchlist rescans
type Service struct {
	config          *config.Config
	analysisService *analysis.Service
	cron            *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, analysisService *analysis.Service) *Service {
	return &Service{
		config:          cfg,
		analysisService: analysisService,
		cron:            cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled watchlist rescans
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.RescanSchedule {
	case "daily":
		// Run daily at 7 AM UTC
		cronExpression = "0 0 7 * * *"
	case "weekly":
		// Run weekly on Monday at 7 AM UTC
		cronExpression = "0 0 7 * * MON"
	default:
		cronExpression = "0 0 7 * * MON"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled watchlist rescan")
		if err := s.analysisService.RunWatchlist(); err != nil {
			logrus.Errorf("Scheduled watchlist rescan failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s watchlist rescans", s.config.RescanSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
