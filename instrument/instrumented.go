package instrument

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nwcmb/taskpool"
)

// Options selects which instrumentation layers to apply. A nil field
// disables that layer entirely rather than falling back to a no-op
// implementation, so callers pay only for what they ask for.
type Options struct {
	Logger *zap.Logger
	Meter  metric.Meter
	Tracer trace.Tracer
}

// Wrap applies Logged, Metrics, and Traced (in that order, outermost
// first) according to opts, skipping whichever are left nil. name
// identifies the task across all three layers.
func Wrap(opts Options, name string, fn taskpool.UnitFunc) taskpool.UnitFunc {
	if opts.Tracer != nil {
		fn = Traced(opts.Tracer, name, fn)
	}
	if opts.Meter != nil {
		fn = Metrics(opts.Meter, name, fn)
	}
	if opts.Logger != nil {
		fn = Logged(opts.Logger, name, fn)
	}
	return fn
}
