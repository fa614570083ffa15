package port

import (
	"context"
	"time"
)

// Metrics is the slice of the Prometheus registry the core and the store
// adapters report into.
type Metrics interface {
	RecordTaskOperation(ctx context.Context, operation string, err error)
	RecordStoreOperation(ctx context.Context, operation string, collection string, duration time.Duration, err error)
}
