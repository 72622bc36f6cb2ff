package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/workshop-analytics/internal/analytics"
	"github.com/ukydev/workshop-analytics/internal/config"
	"github.com/ukydev/workshop-analytics/internal/db"
	"github.com/ukydev/workshop-analytics/internal/handlers"
	"github.com/ukydev/workshop-analytics/internal/middleware"
	"github.com/ukydev/workshop-analytics/internal/notify"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func newRouter(cfg config.Config, service handlers.ReportService) http.Handler {
	limiter := middleware.NewRateLimitMiddleware()
	reports := handlers.NewReportHandler(service, cfg.ReportTimeout)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(log.StandardLogger()))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		reports.Routes(r)
	})
	return r
}

func main() {
	cfg := config.Load()
	cfg.ConfigureLogging()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")

	store := db.NewStore(client.Database(cfg.MongoDB))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("Failed to ensure indexes")
	}

	var publisher analytics.Publisher
	if cfg.MQTTBroker != "" {
		mqttPublisher, err := notify.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
		if err != nil {
			log.WithError(err).WithField("broker", cfg.MQTTBroker).Warn("Report notifications disabled")
		} else {
			defer mqttPublisher.Close()
			publisher = mqttPublisher
			log.WithField("broker", cfg.MQTTBroker).Info("Publishing report summaries")
		}
	}

	service := analytics.NewService(store, publisher, log.StandardLogger())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, service),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server error")
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown initiated")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
