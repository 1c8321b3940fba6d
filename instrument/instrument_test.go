package instrument_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/nwcmb/taskpool/instrument"
)

func TestLoggedPassesThroughResultAndContext(t *testing.T) {
	chk := require.New(t)

	logger := zap.NewNop()
	boom := errors.New("boom")
	wrapped := instrument.Logged(logger, "example", func(ctx context.Context, unitIndex uint32, payload any) error {
		chk.Equal(uint32(2), unitIndex)
		chk.Equal("payload", payload)
		return boom
	})

	err := wrapped(context.Background(), 2, "payload")
	chk.ErrorIs(err, boom)
}

func TestMetricsWrapRecordsWithoutError(t *testing.T) {
	chk := require.New(t)

	meter := otel.Meter("taskpool-instrument-test")
	ran := false
	wrapped := instrument.Metrics(meter, "example", func(ctx context.Context, unitIndex uint32, payload any) error {
		ran = true
		return nil
	})

	chk.NoError(wrapped(context.Background(), 0, nil))
	chk.True(ran)
}

func TestWrapComposesAllLayers(t *testing.T) {
	chk := require.New(t)

	provider, err := instrument.NewStdoutTracerProvider()
	chk.NoError(err)
	defer provider.Shutdown(context.Background())

	var sawWorker uint32
	fn := func(ctx context.Context, unitIndex uint32, payload any) error {
		sawWorker = unitIndex
		return nil
	}

	wrapped := instrument.Wrap(instrument.Options{
		Logger: zap.NewNop(),
		Meter:  otel.Meter("taskpool-instrument-test"),
		Tracer: provider.Tracer("taskpool-instrument-test"),
	}, "composed", fn)

	chk.NoError(wrapped(context.Background(), 7, nil))
	chk.Equal(uint32(7), sawWorker)
}
