// Package instrument adapts taskpool's plain UnitFunc callbacks with
// structured logging, metrics, and tracing, the same three concerns the
// teacher package split across logging.go/metrics.go/tracing.go for its
// own task type. Each wrapper here takes a UnitFunc and returns a
// UnitFunc, so they compose freely and a caller only pays for the
// instrumentation it actually asks for.
package instrument

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nwcmb/taskpool"
)

// Logged wraps fn so that every unit invocation logs its start, its
// outcome, and its duration at the given logger. name identifies the
// task in log output; unit index and worker id are attached as fields.
func Logged(logger *zap.Logger, name string, fn taskpool.UnitFunc) taskpool.UnitFunc {
	return func(ctx context.Context, unitIndex uint32, payload any) error {
		log := logger.With(
			zap.String("task", name),
			zap.Uint32("unit", unitIndex),
			zap.Uint32("worker", taskpool.ThreadID(ctx)),
		)
		log.Debug("unit started")
		start := time.Now()
		err := fn(ctx, unitIndex, payload)
		elapsed := time.Since(start)
		if err != nil {
			log.Error("unit failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		} else {
			log.Debug("unit completed", zap.Duration("elapsed", elapsed))
		}
		return err
	}
}
