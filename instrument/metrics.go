package instrument

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/nwcmb/taskpool"
)

// Metrics wraps fn to record unit counts and latency against meter,
// tagged with name. It creates its instruments once per call to Metrics,
// so callers should build one wrapped UnitFunc per distinct task name
// and reuse it rather than rewrapping per submission.
func Metrics(meter metric.Meter, name string, fn taskpool.UnitFunc) taskpool.UnitFunc {
	completed, _ := meter.Int64Counter(
		"taskpool.unit.completed",
		metric.WithDescription("units completed, by outcome"),
	)
	duration, _ := meter.Float64Histogram(
		"taskpool.unit.duration",
		metric.WithDescription("unit execution time"),
		metric.WithUnit("s"),
	)

	taskAttr := attribute.String("task", name)

	return func(ctx context.Context, unitIndex uint32, payload any) error {
		start := time.Now()
		err := fn(ctx, unitIndex, payload)
		elapsed := time.Since(start).Seconds()

		outcome := attribute.String("outcome", "ok")
		if err != nil {
			outcome = attribute.String("outcome", "error")
		}
		completed.Add(ctx, 1, metric.WithAttributes(taskAttr, outcome))
		duration.Record(ctx, elapsed, metric.WithAttributes(taskAttr))
		return err
	}
}
