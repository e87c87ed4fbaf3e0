package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

// Iteration is one pass of the poll loop.
type Iteration func(ctx context.Context) error

func Chain(it Iteration, mws ...func(Iteration) Iteration) Iteration {
	for i := len(mws) - 1; i >= 0; i-- {
		it = mws[i](it)
	}
	return it
}

func LoggingMiddleware(logger *zap.SugaredLogger) func(Iteration) Iteration {
	return func(next Iteration) Iteration {
		return func(ctx context.Context) error {
			start := time.Now()
			logger.Debug("[poll] iteration started")

			err := next(ctx)

			if err != nil {
				logger.Debugf("[poll] iteration failed in %v: %v", time.Since(start), err)
			} else {
				logger.Debugf("[poll] iteration done in %v", time.Since(start))
			}

			return err
		}
	}
}

// RecoveryMiddleware turns a panic inside an iteration into its error so the
// loop keeps running.
func RecoveryMiddleware(logger *zap.SugaredLogger) func(Iteration) Iteration {
	return func(next Iteration) Iteration {
		return func(ctx context.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorw("[poll] recovered from panic", "panic", r, "stack", string(debug.Stack()))
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return next(ctx)
		}
	}
}
