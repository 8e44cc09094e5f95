package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/lusule/fraud-app-detector/internal/analysis"
	"github.com/lusule/fraud-app-detector/internal/config"
	"github.com/lusule/fraud-app-detector/internal/models"
	"github.com/lusule/fraud-app-detector/internal/notifications"
	"github.com/lusule/fraud-app-detector/internal/playstore"
	"github.com/lusule/fraud-app-detector/internal/report"
	"github.com/lusule/fraud-app-detector/internal/scheduler"
	"github.com/lusule/fraud-app-detector/internal/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Fraud App Detector")

	// Analysis results are archived to blob storage when an account is
	// configured, otherwise to the local data directory.
	var archive storage.ArchiveInterface
	if cfg.StorageAccount != "" {
		archive, err = storage.NewBlobArchive(cfg.StorageAccount, cfg.StorageContainer)
	} else {
		archive, err = storage.NewDiskArchive(cfg.DataDir)
	}
	if err != nil {
		logrus.Fatalf("Failed to initialize archive: %v", err)
	}

	notificationService := notifications.NewService(cfg)
	directory := playstore.NewClient(cfg.PlayStoreAPIURL)
	analysisService := analysis.NewService(cfg, directory, archive, notificationService, nil)

	schedulerService := scheduler.NewService(cfg, analysisService)
	if len(cfg.WatchedApps) > 0 {
		if err := schedulerService.Start(); err != nil {
			logrus.Fatalf("Failed to start scheduler: %v", err)
		}
		defer schedulerService.Stop()
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/metrics", metricsHandler(analysisService)).Methods("GET")
	router.HandleFunc("/api/search", searchHandler(cfg, directory)).Methods("GET")
	router.HandleFunc("/api/analyze", analyzeHandler(analysisService)).Methods("POST")
	router.HandleFunc("/api/compare", compareHandler(analysisService)).Methods("POST")
	router.HandleFunc("/api/compare/export", compareExportHandler(analysisService)).Methods("POST")
	router.HandleFunc("/api/export", exportHandler(analysisService)).Methods("POST")
	router.HandleFunc("/api/insights", insightsHandler(analysisService)).Methods("POST")
	router.HandleFunc("/api/email", emailHandler(analysisService, notificationService)).Methods("POST")
	router.HandleFunc("/trigger", triggerHandler(analysisService)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // analysis runs fetch up to thousands of reviews
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(analysisService *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(analysisService.GetMetrics()))
	}
}

func searchHandler(cfg *config.Config, directory *playstore.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
			return
		}
		country := r.URL.Query().Get("country")
		if country == "" {
			country = cfg.Country
		}

		apps, err := directory.Search(r.Context(), query, country)
		if err != nil {
			logrus.Errorf("Search failed: %v", err)
			writeError(w, http.StatusBadGateway, "app directory search failed")
			return
		}

		writeJSON(w, http.StatusOK, apps)
	}
}

func analyzeHandler(analysisService *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.AppID == "" {
			writeError(w, http.StatusBadRequest, "app_id is required")
			return
		}

		result, err := analysisService.AnalyzeApp(r.Context(), req)
		if err != nil {
			logrus.Errorf("Analysis failed: %v", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func compareHandler(analysisService *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ComparisonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.AppID1 == "" || req.AppID2 == "" {
			writeError(w, http.StatusBadRequest, "app_id_1 and app_id_2 are required")
			return
		}
		if analysis.ExtractAppID(req.AppID1) == analysis.ExtractAppID(req.AppID2) {
			writeError(w, http.StatusBadRequest, "cannot compare an app to itself")
			return
		}

		result, err := analysisService.CompareApps(r.Context(), req)
		if err != nil {
			logrus.Errorf("Comparison failed: %v", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

type exportRequest struct {
	models.AnalysisRequest
	Format string              `json:"format"` // "csv" or "xlsx"
	Filter models.ReviewFilter `json:"filter"`
}

func exportHandler(analysisService *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.AppID == "" {
			writeError(w, http.StatusBadRequest, "app_id is required")
			return
		}

		result, err := analysisService.AnalyzeApp(r.Context(), req.AnalysisRequest)
		if err != nil {
			logrus.Errorf("Export analysis failed: %v", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		// The filter narrows the exported review rows; the summary metrics
		// stay computed over the whole collection.
		result.Reviews = analysis.FilterReviews(result.Reviews, req.Filter)

		switch req.Format {
		case "xlsx":
			workbook, err := report.Workbook(result)
			if err != nil {
				logrus.Errorf("Workbook generation failed: %v", err)
				writeError(w, http.StatusInternalServerError, "failed to generate workbook")
				return
			}
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_full_app_summary.xlsx"`, result.AppID))
			w.WriteHeader(http.StatusOK)
			w.Write(workbook.Bytes())
		case "csv", "":
			csvData, err := report.CSV(report.Rows(result.Reviews))
			if err != nil {
				logrus.Errorf("CSV generation failed: %v", err)
				writeError(w, http.StatusInternalServerError, "failed to generate CSV")
				return
			}
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_review_analysis.csv"`, result.AppID))
			w.WriteHeader(http.StatusOK)
			w.Write(csvData)
		default:
			writeError(w, http.StatusBadRequest, "format must be 'csv' or 'xlsx'")
		}
	}
}

func compareExportHandler(analysisService *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ComparisonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.AppID1 == "" || req.AppID2 == "" {
			writeError(w, http.StatusBadRequest, "app_id_1 and app_id_2 are required")
			return
		}

		result, err := analysisService.CompareApps(r.Context(), req)
		if err != nil {
			logrus.Errorf("Comparison export failed: %v", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		workbook, err := report.ComparisonWorkbook(result)
		if err != nil {
			logrus.Errorf("Comparison workbook generation failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to generate workbook")
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_vs_%s_comparison.xlsx"`, result.App1.AppID, result.App2.AppID))
		w.WriteHeader(http.StatusOK)
		w.Write(workbook.Bytes())
	}
}

type insightsRequest struct {
	models.AnalysisRequest
	Filter   models.ReviewFilter `json:"filter"`
	TopWords int                 `json:"top_words"`
}

type insightsResponse struct {
	AppID    string                  `json:"app_id"`
	Total    int                     `json:"total"`
	Metrics  models.SentimentMetrics `json:"metrics"`
	Trend    []models.TrendPoint     `json:"trend"`
	TopWords []models.WordCount      `json:"top_words"`
}

func insightsHandler(analysisService *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req insightsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.AppID == "" {
			writeError(w, http.StatusBadRequest, "app_id is required")
			return
		}

		result, err := analysisService.AnalyzeApp(r.Context(), req.AnalysisRequest)
		if err != nil {
			logrus.Errorf("Insights analysis failed: %v", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		// Insights are computed over the filtered collection, matching how
		// the metrics page narrows before aggregating.
		filtered := analysis.FilterReviews(result.Reviews, req.Filter)

		topN := req.TopWords
		if topN <= 0 {
			topN = 25
		}

		writeJSON(w, http.StatusOK, insightsResponse{
			AppID:    result.AppID,
			Total:    len(filtered),
			Metrics:  analysis.ComputeMetrics(filtered, result.Metadata),
			Trend:    analysis.Trend(filtered),
			TopWords: analysis.TopWords(filtered, topN),
		})
	}
}

type emailRequest struct {
	models.AnalysisRequest
	Name  string `json:"name"`
	Email string `json:"email"`
}

func emailHandler(analysisService *analysis.Service, notificationService notifications.NotificationInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.AppID == "" || req.Name == "" || req.Email == "" {
			writeError(w, http.StatusBadRequest, "app_id, name, and email are required")
			return
		}

		result, err := analysisService.AnalyzeApp(r.Context(), req.AnalysisRequest)
		if err != nil {
			logrus.Errorf("Email analysis failed: %v", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		csvData, err := report.CSV(report.Rows(result.Reviews))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate CSV")
			return
		}
		workbook, err := report.Workbook(result)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate workbook")
			return
		}

		if err := notificationService.SendAnalysisReport(req.Name, req.Email, result, csvData, workbook.Bytes()); err != nil {
			logrus.Errorf("Failed to email report: %v", err)
			writeError(w, http.StatusBadGateway, "failed to send email")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Report sent to %s", req.Email)})
	}
}

func triggerHandler(analysisService *analysis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		go func() {
			if err := analysisService.RunWatchlist(); err != nil {
				logrus.Errorf("Manual watchlist trigger failed: %v", err)
			}
		}()

		writeJSON(w, http.StatusOK, map[string]string{"message": "Watchlist rescan triggered"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
