package instrument

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nwcmb/taskpool"
)

// Traced wraps fn so each unit invocation runs inside its own span,
// named "taskpool.unit <name>". The worker's thread id and unit index
// are attached as span attributes; a returned error marks the span
// failed and records the error on it.
func Traced(tracer trace.Tracer, name string, fn taskpool.UnitFunc) taskpool.UnitFunc {
	return func(ctx context.Context, unitIndex uint32, payload any) error {
		ctx, span := tracer.Start(ctx, "taskpool.unit "+name,
			trace.WithAttributes(
				attribute.String("task", name),
				attribute.Int64("unit", int64(unitIndex)),
				attribute.Int64("worker", int64(taskpool.ThreadID(ctx))),
			),
		)
		defer span.End()

		err := fn(ctx, unitIndex, payload)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
