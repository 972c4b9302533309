package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"sandgrund/internal/health"
	"sandgrund/internal/notifier"
	"sandgrund/pkg/config"
	"sandgrund/pkg/kafka"
	kafka_config "sandgrund/pkg/kafka/config"
	kafka_middleware "sandgrund/pkg/kafka/middleware"
	"sandgrund/pkg/mailer"
	"sandgrund/pkg/metrics"

	"github.com/julienschmidt/httprouter"
)

const (
	ServiceName = "notifier"
	timezone    = "Europe/Stockholm"
)

func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		cfg.Log.Fatal("Failed to load timezone", "timezone", timezone, "error", err)
	}

	var sender mailer.Sender = mailer.NopSender{Log: cfg.Log}
	if cfg.MailEnabled() {
		sender = mailer.NewZeptoSender(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom, cfg.Log)
	} else {
		cfg.Log.Warn("Mail is not configured, notifications will only be logged")
	}

	m := metrics.New(ServiceName)
	n := notifier.New(sender, loc, cfg.Log)

	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.BookingTopic, cfg.NotifierGroupID, cfg.BookingDLQTopic, n.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(kafka_middleware.MetricsConsumerMiddleware(m))
	}

	router := httprouter.New()
	health.NewHandler(nil, cfg.Log).RegisterRoutes(router)
	router.Handler(http.MethodGet, cfg.MetricsPath, m.Handler())
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		cfg.Log.Info("Starting metrics server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cfg.Log.Error("Metrics server failed", "error", err)
			stop()
		}
	}()

	cfg.Log.Info("Notifier consuming", "topic", cfg.BookingTopic, "group", cfg.NotifierGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	cfg.Log.Info("Shutting down notifier")
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		cfg.Log.Error("Metrics server shutdown failed", "error", err)
	}
}
