package components

import (
	"context"
	"log/slog"
	"sync"

	"arena-booking/internal/usecase/commands"
	"arena-booking/internal/usecase/idempotency"
	"arena-booking/internal/usecase/outbox"
	"arena-booking/internal/usecase/settlement"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		func(c commands.ReservationCommands) settlement.Settler { return c },
		settlement.NewWorker,
		outbox.NewRelay,
		idempotency.NewSweeper,
	),
	fx.Invoke(RunBackground),
)

type loop interface {
	Run(ctx context.Context) error
}

// RunBackground ties the polling loops to the fx lifecycle. Stop cancels them
// and waits for the in-flight batch to finish.
func RunBackground(
	lc fx.Lifecycle,
	worker *settlement.Worker,
	relay *outbox.Relay,
	sweeper *idempotency.Sweeper,
	logger *slog.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	start := func(name string, l loop) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("background loop stopped", "loop", name, "error", err)
			}
		}()
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			start("settlement", worker)
			start("outbox", relay)
			start("idempotency", sweeper)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
