package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/acme/voice-call-runner/internal/app"
	"github.com/acme/voice-call-runner/internal/telemetry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	configPath := flag.String("config", getEnv("CONFIG_FILE", "configs/config.yaml"), "path to configuration file")
	flag.Parse()

	container, err := app.Build(ctx, *configPath)
	if err != nil {
		log.Fatalf("failed to bootstrap application: %v", err)
	}
	defer container.Close(context.Background())

	lg := container.Logger

	shutdown, err := telemetry.Setup(ctx, container.Config.Telemetry, container.Config.App.Name, container.Config.App.Version)
	if err != nil {
		lg.Fatal("failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		sctx := context.Background()
		if d := container.Config.Telemetry.ShutdownTimeout; d > 0 {
			var scancel context.CancelFunc
			sctx, scancel = context.WithTimeout(sctx, d)
			defer scancel()
		}
		_ = shutdown(sctx)
	}()

	outcome, err := container.Controller.Run(ctx, container.Request(), container.Params())
	if err != nil {
		// Run errors are the fatal taxonomy: initiation failure or no
		// snapshot ever obtained. No outcome exists to report.
		lg.Fatal("call run aborted", zap.Error(err))
	}

	lg.Info("recording url", zap.String("value", outcome.Fields.RecordingURL))
	lg.Info("call duration", zap.String("value", outcome.Fields.Duration))
	lg.Info("call cost", zap.String("value", outcome.Fields.Cost))
	lg.Info("call summary", zap.String("value", outcome.Fields.Summary))

	if outcome.SnapshotPath != "" {
		lg.Info("snapshot file", zap.String("path", outcome.SnapshotPath))
	}
	if outcome.RecordingPath != "" {
		lg.Info("recording file", zap.String("path", outcome.RecordingPath))
	}
	if outcome.CallLogPath != "" {
		lg.Info("call log file", zap.String("path", outcome.CallLogPath))
	}
	if outcome.TimedOut {
		lg.Warn("call monitoring timed out before the call ended")
	}
	if outcome.PollError != "" {
		lg.Warn("completed with warning", zap.String("poll_error", outcome.PollError))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
