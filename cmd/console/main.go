package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-console/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-console/internal/handler/http"
	"github.com/cmlabs-hris/hris-console/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-console/internal/pkg/recordclient"
	"github.com/cmlabs-hris/hris-console/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-console/internal/service/session"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-console"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Error loading clock timezone", "error", err)
		os.Exit(1)
	}

	records, err := recordclient.New(cfg.Records.BaseURL, recordclient.WithTimeout(cfg.Records.Timeout))
	if err != nil {
		logger.Error("Error creating record client", "error", err)
		os.Exit(1)
	}

	hub := sse.NewHub()
	registry := session.NewRegistry(records, hub, session.Options{
		IdleTimeout: cfg.Session.IdleTimeout,
		Location:    loc,
		Logger:      logger,
	})

	scheduler := cron.NewScheduler(logger)
	scheduler.Every("session-sweep", cfg.Session.SweepInterval, registry.Sweep)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{AllowedOrigins: cfg.CORS.AllowedOrigins, Logger: logger},
		registry,
		appHTTP.NewSessionHandler(registry, hub),
		appHTTP.NewListHandler(),
		appHTTP.NewFormHandler(),
		appHTTP.NewAttendanceHandler(),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server.RegisterOnShutdown(hub.Close)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Console running", "addr", server.Addr, "record_api", cfg.Records.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
