package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
	Registry    *prometheus.Registry // nil uses the default registerer
}

// InitMetrics wires an OpenTelemetry meter provider to a Prometheus exporter
// and returns the provider with the /metrics handler.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	var opts []promexporter.Option
	var handler http.Handler = promhttp.Handler()
	if cfg.Registry != nil {
		opts = append(opts, promexporter.WithRegisterer(cfg.Registry))
		handler = promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})
	}

	exporter, err := promexporter.New(opts...)
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		)),
	)
	otel.SetMeterProvider(provider)

	return provider, handler, nil
}
