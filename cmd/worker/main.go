package main

import (
	"context"
	"log/slog"
	"os"

	"arena-booking/cmd/bootstrap"

	"go.uber.org/fx"
)

// The worker process runs the settlement worker and the outbox relay. Several
// replicas may run at once; job and event claims use SKIP LOCKED.
func main() {
	app := fx.New(bootstrap.WorkerModule)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop worker cleanly", "error", err)
	}

	slog.Info("worker stopped")
}
