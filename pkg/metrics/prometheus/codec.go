// Package prometheus implements pkg/metrics.CodecMetrics with
// Prometheus counters and histograms registered against the
// package-level registry from pkg/metrics.
package prometheus

import (
	"time"

	"github.com/marmos91/gocdr/pkg/cdr"
	"github.com/marmos91/gocdr/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func init() {
	metrics.RegisterCodecMetricsConstructor(NewCodecMetrics)
}

// codecMetrics is the Prometheus implementation of metrics.CodecMetrics.
type codecMetrics struct {
	encodeOperations *prometheus.CounterVec
	encodeDuration   *prometheus.HistogramVec
	encodeBytes      *prometheus.HistogramVec
	decodeOperations *prometheus.CounterVec
	decodeDuration   *prometheus.HistogramVec
	decodeBytes      *prometheus.HistogramVec
	errors           *prometheus.CounterVec
	bufferGrowths    prometheus.Counter
	bufferCapacity   prometheus.Gauge
}

// NewCodecMetrics creates a new Prometheus-backed CodecMetrics instance.
//
// Returns nil if metrics are not enabled (metrics.InitRegistry not
// called).
func NewCodecMetrics() metrics.CodecMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &codecMetrics{
		encodeOperations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocdr_encode_operations_total",
				Help: "Total number of completed encode operations by CDR version and encoding kind",
			},
			[]string{"version", "kind"},
		),
		encodeDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "gocdr_encode_duration_milliseconds",
				Help: "Duration of encode operations in milliseconds",
				Buckets: []float64{
					0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100,
				},
			},
			[]string{"version", "kind"},
		),
		encodeBytes: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gocdr_encode_bytes",
				Help:    "Distribution of bytes produced by encode operations",
				Buckets: []float64{16, 64, 256, 1024, 4096, 16384, 65536, 262144},
			},
			[]string{"version", "kind"},
		),
		decodeOperations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocdr_decode_operations_total",
				Help: "Total number of completed decode operations by CDR version and encoding kind",
			},
			[]string{"version", "kind"},
		),
		decodeDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "gocdr_decode_duration_milliseconds",
				Help: "Duration of decode operations in milliseconds",
				Buckets: []float64{
					0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100,
				},
			},
			[]string{"version", "kind"},
		),
		decodeBytes: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gocdr_decode_bytes",
				Help:    "Distribution of bytes consumed by decode operations",
				Buckets: []float64{16, 64, 256, 1024, 4096, 16384, 65536, 262144},
			},
			[]string{"version", "kind"},
		),
		errors: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "gocdr_errors_total",
				Help: "Total number of codec errors by operation and error kind",
			},
			[]string{"op", "kind"},
		),
		bufferGrowths: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "gocdr_buffer_growths_total",
				Help: "Total number of owned-growable buffer reallocations",
			},
		),
		bufferCapacity: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "gocdr_buffer_capacity_bytes",
				Help: "Capacity, in bytes, of the most recently grown buffer",
			},
		),
	}
}

func (m *codecMetrics) RecordEncode(version cdr.CdrVersion, kind cdr.EncodingAlgorithmFlag, bytes int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{version.String(), kind.String()}
	m.encodeOperations.WithLabelValues(labels...).Inc()
	m.encodeDuration.WithLabelValues(labels...).Observe(duration.Seconds() * 1000)
	if bytes > 0 {
		m.encodeBytes.WithLabelValues(labels...).Observe(float64(bytes))
	}
}

func (m *codecMetrics) RecordDecode(version cdr.CdrVersion, kind cdr.EncodingAlgorithmFlag, bytes int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{version.String(), kind.String()}
	m.decodeOperations.WithLabelValues(labels...).Inc()
	m.decodeDuration.WithLabelValues(labels...).Observe(duration.Seconds() * 1000)
	if bytes > 0 {
		m.decodeBytes.WithLabelValues(labels...).Observe(float64(bytes))
	}
}

func (m *codecMetrics) RecordError(op string, errKind string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(op, errKind).Inc()
}

func (m *codecMetrics) RecordGrowth(newCapacity int) {
	if m == nil {
		return
	}
	m.bufferGrowths.Inc()
	m.bufferCapacity.Set(float64(newCapacity))
}
