package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"taskapi/internal/core/domain"
)

func TestAppMetrics_RecordTaskOperation(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	metrics.RecordTaskOperation(ctx, "create", nil)
	metrics.RecordTaskOperation(ctx, "create", nil)
	metrics.RecordTaskOperation(ctx, "create", errors.New("boom"))
	metrics.RecordTaskOperation(ctx, "get", domain.ErrTaskNotFound)
	metrics.RecordTaskOperation(ctx, "get", fmt.Errorf("find task: %w", domain.ErrTaskNotFound))

	Expect(testutil.ToFloat64(metrics.taskOperations.WithLabelValues("create", "ok"))).To(Equal(2.0))
	Expect(testutil.ToFloat64(metrics.taskOperations.WithLabelValues("create", "error"))).To(Equal(1.0))
	Expect(testutil.ToFloat64(metrics.taskOperations.WithLabelValues("get", "not_found"))).To(Equal(2.0))
	Expect(testutil.ToFloat64(metrics.taskOperations.WithLabelValues("get", "error"))).To(Equal(0.0))
}

func TestAppMetrics_RecordRequest(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())
	metrics.RecordRequest(context.Background(), "GET", "/tasks", http.StatusOK, 20*time.Millisecond)

	Expect(testutil.ToFloat64(metrics.requestTotal.WithLabelValues("GET", "/tasks", "200"))).To(Equal(1.0))
}

func TestAppMetrics_RecordStoreOperation(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())
	metrics.RecordStoreOperation(context.Background(), "find", "tasks", time.Millisecond, nil)
	metrics.RecordStoreOperation(context.Background(), "findOne", "tasks", time.Millisecond, domain.ErrTaskNotFound)

	Expect(testutil.ToFloat64(metrics.storeOperations.WithLabelValues("find", "tasks", "ok"))).To(Equal(1.0))
	Expect(testutil.ToFloat64(metrics.storeOperations.WithLabelValues("findOne", "tasks", "not_found"))).To(Equal(1.0))
}
