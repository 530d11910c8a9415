package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const tracerName = "tourguide/scheduler"

type schedulerMetricsCollection struct {
	usersProcessed metric.Int64Counter
	batchDuration  metric.Float64Histogram
}

var metrics schedulerMetricsCollection

func init() {
	meter := otel.Meter(tracerName)

	usersProcessed, err := meter.Int64Counter(
		"scheduler/users_processed",
		metric.WithDescription("Total number of users processed by batch runs"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create users processed metric: %w", err))
	}

	batchDuration, err := meter.Float64Histogram(
		"scheduler/batch_duration_seconds",
		metric.WithDescription("Processing time for dispatched batches"),
		metric.WithUnit("s"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create batch duration metric: %w", err))
	}

	metrics = schedulerMetricsCollection{
		usersProcessed: usersProcessed,
		batchDuration:  batchDuration,
	}
}

func recordUserProcessed(ctx context.Context, operation string, success bool) {
	metrics.usersProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	))
}

func recordBatchDuration(ctx context.Context, operation string, duration time.Duration) {
	metrics.batchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}
