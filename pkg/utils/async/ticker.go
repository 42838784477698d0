package async

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/utils/apperr"
)

// Every runs handler once per interval until ctx is done. A failed or
// panicking run is logged and the next tick still fires. The returned
// channel is closed when the loop has stopped.
func Every(ctx context.Context, interval time.Duration, handler func(ctx context.Context) error) (<-chan struct{}, error) {
	if interval <= 0 {
		return nil, goerr.New("interval must be positive", goerr.V("interval", interval))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run(ctx, handler)
			}
		}
	}()

	return done, nil
}

func run(ctx context.Context, handler func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.From(ctx).Error("Panic in background handler",
				slog.Any("recover", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	if err := handler(ctx); err != nil {
		apperr.Handle(ctx, goerr.Wrap(err, "background handler failed"))
	}
}
