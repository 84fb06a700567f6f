package metrics

import (
	"fmt"

	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const MeterName = "github.com/nais/usersync"

// Metrics holds the instruments shared by the clients
type Metrics struct {
	Errors      metric.Int64Counter
	RequestTime metric.Int64Histogram
}

// NewPrometheusProvider returns a meter provider that is read by the Prometheus exporter.
// The exporter registers with the default Prometheus registry.
func NewPrometheusProvider() (*sdkmetric.MeterProvider, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)), nil
}

func New(meter metric.Meter) (*Metrics, error) {
	errors, err := meter.Int64Counter("errors", metric.WithDescription("errors talking to remote collaborators"))
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	requestTime, err := meter.Int64Histogram("users_request_time", metric.WithDescription("users endpoint request time"), metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create users_request_time histogram: %w", err)
	}

	return &Metrics{
		Errors:      errors,
		RequestTime: requestTime,
	}, nil
}
