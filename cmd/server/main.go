package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/harudiary/server/internal/config"
	"codeberg.org/harudiary/server/internal/logger"
	rcron "github.com/robfig/cron/v3"
)

func main() {
	logger.Info("starting harudiary server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// create server with all dependencies
	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation requests wait on two providers
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// optionally run the daily diary job in-process; deployments that use an
	// external cron hit the HTTP trigger instead
	scheduler := startScheduler(srv, cfg)

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	if scheduler != nil {
		// let an in-flight job run finish
		<-scheduler.Stop().Done()
	}

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// close database connection
	srv.db.Close()

	logger.Info("server stopped")
}

// registers the daily diary job with an in-process cron scheduler when a
// schedule is configured; returns nil when it is not
func startScheduler(srv *Server, cfg *config.Config) *rcron.Cron {
	if cfg.CronSchedule == "" {
		return nil
	}

	scheduler := rcron.New()

	_, err := scheduler.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		summary, err := srv.services.DailyJob.Run(ctx)
		if err != nil {
			logger.ErrorErr(err, "scheduled daily diary run failed")
			return
		}

		logger.Info("scheduled daily diary committed", "title", summary.Title, "date", summary.Date)
	})
	if err != nil {
		logger.Fatal("invalid CRON_SCHEDULE expression", "error", err, "schedule", cfg.CronSchedule)
	}

	scheduler.Start()
	logger.Info("daily diary scheduler started", "schedule", cfg.CronSchedule)

	return scheduler
}
