package manifest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestLoadRequiresSource(t *testing.T) {
	_, err := Load(context.Background(), nil)
	require.Error(t, err)
}

func TestLoadMetricsTolerateMissingInstruments(t *testing.T) {
	require.NotPanics(t, func() {
		loadMetrics{}.record(context.Background(), time.Now(), Report{Skipped: 2}, true)
	})

	m := newLoadMetrics(noop.NewMeterProvider().Meter("test"))
	require.NotNil(t, m.latency)
	require.NotNil(t, m.skipped)
	require.NotPanics(t, func() {
		m.record(context.Background(), time.Now(), Report{Lines: 3, Entries: 2, Skipped: 1}, false)
	})
}
