package telemetry

import (
	"context"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"taskapi/pkg/config"
)

func TestNewContainer_ExportsOTelMetricsToRegistry(t *testing.T) {
	RegisterTestingT(t)

	container, err := NewContainer(context.Background(), Config{
		ServiceName:    "taskapi-test",
		ServiceVersion: "test",
		Environment:    "test",
		MetricsPort:    "0",
	}, config.NewNopLogger())

	Expect(err).To(BeNil())
	defer container.Shutdown(context.Background())

	families, err := container.PrometheusRegistry.Gather()
	Expect(err).To(BeNil())

	names := map[string]bool{}
	runtimeScope := false

	for _, family := range families {
		names[family.GetName()] = true

		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "otel_scope_name" && strings.HasSuffix(label.GetValue(), "instrumentation/runtime") {
					runtimeScope = true
				}
			}
		}
	}

	Expect(names).To(HaveKey("target_info"))
	Expect(names).To(HaveKey("go_goroutines"))
	Expect(runtimeScope).To(BeTrue())

	container.AppMetrics.RecordTaskOperation(context.Background(), "create", nil)

	count, err := testutil.GatherAndCount(container.PrometheusRegistry, "task_operations_total")
	Expect(err).To(BeNil())
	Expect(count).To(Equal(1))
}

func TestConfigFrom(t *testing.T) {
	RegisterTestingT(t)

	cfg := config.GetDefaultConfig()
	cfg.OTLPEndpoint = "collector:4317"

	telemetryConfig := ConfigFrom(cfg)

	Expect(telemetryConfig.ServiceName).To(Equal(cfg.ServiceName))
	Expect(telemetryConfig.MetricsPort).To(Equal(cfg.MetricsPort))
	Expect(telemetryConfig.OTLPEndpoint).To(Equal("collector:4317"))
}
