package main

import (
	"context"
	"log/slog"
	"os"

	"cardcomps-backend/lib/telemetry"
)

// initTelemetry is best effort, a missing telemetry.json5 just leaves
// the otlp exporters disabled.
func initTelemetry(ctx context.Context) {
	tel, err := telemetry.SetupFromEnv(ctx, "cardcomps-server")
	if os.IsNotExist(err) {
		slog.Info("telemetry.json5 not found, otlp export disabled")
		return
	}
	if err != nil {
		slog.Warn("failed to set up telemetry", "err", err)
		return
	}

	go func() {
		<-ctx.Done()
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Error("failed to shut down telemetry", "err", err)
		}
	}()
}
