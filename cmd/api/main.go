package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/avelier/forecast-service/internal/cache"
	"github.com/avelier/forecast-service/internal/config"
	"github.com/avelier/forecast-service/internal/handler"
	"github.com/avelier/forecast-service/internal/middleware"
	"github.com/avelier/forecast-service/internal/repository"
	"github.com/avelier/forecast-service/internal/service"
	"github.com/avelier/forecast-service/internal/utils/email"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// scenarioRetention is how long soft-deleted scenarios are kept before the
// nightly job purges them.
const scenarioRetention = 30 * 24 * time.Hour

func main() {
	godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize redis for draft caching
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatalf("Invalid redis URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	// Initialize layers
	repo := repository.NewRepository(db)
	drafts := cache.NewDraftCache(rdb)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, drafts, mailer, logger, cfg)
	h := handler.NewHandler(svc)

	// Scheduled purge of soft-deleted scenarios
	scheduler := cron.New()
	_, err = scheduler.AddFunc("0 3 * * *", func() {
		purged, err := repo.PurgeDeletedScenarios(scenarioRetention)
		if err != nil {
			logger.Errorf("Scenario purge failed: %v", err)
			return
		}
		if purged > 0 {
			logger.Infof("Purged %d deleted scenarios", purged)
		}
	})
	if err != nil {
		logger.Fatalf("Failed to schedule scenario purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/compute", h.Compute).Methods("POST")
	r.HandleFunc("/assumptions/default", h.DefaultAssumptions).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/scenarios", h.CreateScenario).Methods("POST")
	authRouter.HandleFunc("/scenarios", h.ListScenarios).Methods("GET")
	authRouter.HandleFunc("/scenarios/{id}", h.GetScenario).Methods("GET")
	authRouter.HandleFunc("/scenarios/{id}", h.UpdateScenario).Methods("PUT")
	authRouter.HandleFunc("/scenarios/{id}", h.DeleteScenario).Methods("DELETE")
	authRouter.HandleFunc("/scenarios/{id}/metrics", h.ScenarioMetrics).Methods("GET")
	authRouter.HandleFunc("/scenarios/{id}/export", h.ExportScenario).Methods("GET")
	authRouter.HandleFunc("/scenarios/{id}/email", h.EmailReport).Methods("POST")
	authRouter.HandleFunc("/draft", h.SaveDraft).Methods("PUT")
	authRouter.HandleFunc("/draft", h.LoadDraft).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
