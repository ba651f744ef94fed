package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
	Port        int
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.Handler()

	return provider, handler, nil
}

// ScoringMetrics holds the Prometheus instruments for the scoring pipeline.
type ScoringMetrics struct {
	ScoringRequests        *prometheus.CounterVec
	ValidationFailures     prometheus.Counter
	NormalizationFallbacks *prometheus.CounterVec
	ScoringDuration        prometheus.Histogram
}

// NewScoringMetrics registers the scoring pipeline instruments with the given
// registerer (pass prometheus.DefaultRegisterer in production).
func NewScoringMetrics(reg prometheus.Registerer) *ScoringMetrics {
	factory := promauto.With(reg)
	return &ScoringMetrics{
		ScoringRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_scoring_requests_total",
			Help: "Completed scoring calls partitioned by resulting risk tier.",
		}, []string{"tier"}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "risk_scoring_validation_failures_total",
			Help: "Scoring calls rejected with field validation errors.",
		}),
		NormalizationFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_scoring_normalization_fallbacks_total",
			Help: "Categorical values not found in encoder metadata, partitioned by field.",
		}, []string{"field"}),
		ScoringDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "risk_scoring_duration_seconds",
			Help:    "Latency of a full scoring call.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
