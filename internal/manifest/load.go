package manifest

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/platform/requestctx"
)

const instrumentationName = "finitefield.org/glb-gallery/internal/manifest"

var (
	tracer  = otel.Tracer(instrumentationName)
	metrics = newLoadMetrics(otel.GetMeterProvider().Meter(instrumentationName))
)

type loadMetrics struct {
	latency metric.Float64Histogram
	skipped metric.Int64Counter
}

func newLoadMetrics(meter metric.Meter) loadMetrics {
	var m loadMetrics
	if h, err := meter.Float64Histogram(
		"manifest.load.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Latency in milliseconds for manifest fetch and parse"),
	); err == nil {
		m.latency = h
	}
	if c, err := meter.Int64Counter(
		"manifest.lines.skipped",
		metric.WithDescription("Manifest lines that did not describe an asset"),
	); err == nil {
		m.skipped = c
	}
	return m
}

func (m loadMetrics) record(ctx context.Context, started time.Time, report Report, failed bool) {
	attrs := metric.WithAttributes(attribute.Bool("failed", failed))
	if m.latency != nil {
		m.latency.Record(ctx, float64(time.Since(started))/float64(time.Millisecond), attrs)
	}
	if m.skipped != nil && report.Skipped > 0 {
		m.skipped.Add(ctx, int64(report.Skipped))
	}
}

// Load retrieves and parses the manifest. Malformed lines are logged at debug level and
// counted in the report.
func Load(ctx context.Context, src Source) (Manifest, error) {
	if src == nil {
		return Manifest{}, errors.New("manifest: source is required")
	}
	ctx, span := tracer.Start(ctx, "manifest.Load")
	defer span.End()
	started := time.Now()
	span.SetAttributes(attribute.String("manifest.source", src.String()))

	logger := requestctx.Logger(ctx)

	rc, err := src.Open(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open manifest")
		metrics.record(ctx, started, Report{}, true)
		return Manifest{Source: src.String()}, err
	}
	defer rc.Close()

	entries, report, err := Parse(rc, func(lineNo int, line string, err error) {
		logger.Debug("manifest line skipped",
			zap.Int("line", lineNo),
			zap.String("content", line),
			zap.Error(err),
		)
	})
	span.SetAttributes(
		attribute.Int("manifest.lines", report.Lines),
		attribute.Int("manifest.entries", report.Entries),
		attribute.Int("manifest.skipped", report.Skipped),
	)
	metrics.record(ctx, started, report, err != nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read manifest")
		return Manifest{Source: src.String(), Report: report}, err
	}

	return Manifest{Source: src.String(), Entries: entries, Report: report}, nil
}
