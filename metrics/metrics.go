package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "solara"

// Collector provides application metrics collection
type Collector struct {
	registry *prometheus.Registry

	// HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Uploads
	UploadsTotal  *prometheus.CounterVec
	ParseDuration prometheus.Histogram
	LoadedRecords prometheus.Gauge

	// Predictions
	PredictionsTotal *prometheus.CounterVec
	PredictedUVMax   prometheus.Gauge

	// Live clients
	WebsocketClients prometheus.Gauge
}

// NewCollector registers every metric on a fresh registry, together with
// the Go runtime and process collectors.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"route"},
		),

		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dataset_uploads_total",
				Help:      "Total number of dataset uploads by result",
			},
			[]string{"result"},
		),

		ParseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dataset_parse_duration_seconds",
				Help:      "Duration of spreadsheet parsing in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
		),

		LoadedRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_records",
				Help:      "Number of records in the loaded dataset",
			},
		),

		PredictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_total",
				Help:      "Total number of predictions by result",
			},
			[]string{"result"},
		),

		PredictedUVMax: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "predicted_uv_max",
				Help:      "Maximum UV index of the latest prediction",
			},
		),

		WebsocketClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "websocket_clients",
				Help:      "Number of connected websocket clients",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled HTTP request
func (c *Collector) ObserveRequest(route, method, status string, duration time.Duration) {
	c.RequestsTotal.WithLabelValues(route, method, status).Inc()
	c.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ObserveUpload records an upload outcome, records is only used on success
func (c *Collector) ObserveUpload(result string, duration time.Duration, records int) {
	c.UploadsTotal.WithLabelValues(result).Inc()
	c.ParseDuration.Observe(duration.Seconds())
	if result == ResultOK {
		c.LoadedRecords.Set(float64(records))
	}
}

func (c *Collector) ObservePrediction(result string, uvMax float64) {
	c.PredictionsTotal.WithLabelValues(result).Inc()
	if result == ResultOK {
		c.PredictedUVMax.Set(uvMax)
	}
}

const (
	ResultOK             = "ok"
	ResultInvalid        = "invalid"
	ResultMissingColumns = "missing_columns"
	ResultTooLarge       = "too_large"
	ResultNoData         = "no_data"
	ResultError          = "error"
)
