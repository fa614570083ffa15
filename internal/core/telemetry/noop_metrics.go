package telemetry

import (
	"context"
	"time"
)

// NoOpMetrics drops every measurement. Used when no registry is wired, e.g. in tests.
type NoOpMetrics struct{}

func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

func (NoOpMetrics) RecordTaskOperation(ctx context.Context, operation string, err error) {}

func (NoOpMetrics) RecordStoreOperation(ctx context.Context, operation, collection string, duration time.Duration, err error) {
}
