package metrics

import (
	"time"

	"github.com/marmos91/gocdr/pkg/cdr"
)

// CodecMetrics records measurements from codec encode/decode operations.
// Implementations must tolerate a nil receiver (RecordX on a nil
// CodecMetrics is a documented no-op), so callers never need a
// conditional around every call site.
type CodecMetrics interface {
	// RecordEncode records a completed SerializeX pass: the dialect and
	// grammar in effect, bytes written, and wall time spent.
	RecordEncode(version cdr.CdrVersion, kind cdr.EncodingAlgorithmFlag, bytes int, duration time.Duration)

	// RecordDecode records a completed DeserializeX pass.
	RecordDecode(version cdr.CdrVersion, kind cdr.EncodingAlgorithmFlag, bytes int, duration time.Duration)

	// RecordError records a failed operation. op is "encode" or "decode";
	// errKind classifies the failure (e.g. "short_buffer", "bad_sentinel").
	RecordError(op string, errKind string)

	// RecordGrowth records a growable buffer reallocation reaching
	// newCapacity bytes.
	RecordGrowth(newCapacity int)
}

// NewCodecMetrics creates a new Prometheus-backed CodecMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
// When nil is returned, callers should pass nil to their command
// wrappers, which results in zero overhead.
//
// Example usage:
//
//	metrics.InitRegistry()
//	codecMetrics := metrics.NewCodecMetrics()
//	runEncode(codecMetrics)
func NewCodecMetrics() CodecMetrics {
	if !IsEnabled() {
		return nil
	}

	return newPrometheusCodecMetrics()
}

// newPrometheusCodecMetrics is implemented in pkg/metrics/prometheus/codec.go.
// This indirection avoids an import cycle (prometheus subpackage imports
// this package to reach IsEnabled/GetRegistry) while keeping the API clean.
var newPrometheusCodecMetrics func() CodecMetrics

// RegisterCodecMetricsConstructor registers the Prometheus codec metrics
// constructor. Called by pkg/metrics/prometheus/codec.go during package
// initialization.
func RegisterCodecMetricsConstructor(constructor func() CodecMetrics) {
	newPrometheusCodecMetrics = constructor
}

// RecordEncode records an encode operation, tolerating a nil m.
func RecordEncode(m CodecMetrics, version cdr.CdrVersion, kind cdr.EncodingAlgorithmFlag, bytes int, duration time.Duration) {
	if m != nil {
		m.RecordEncode(version, kind, bytes, duration)
	}
}

// RecordDecode records a decode operation, tolerating a nil m.
func RecordDecode(m CodecMetrics, version cdr.CdrVersion, kind cdr.EncodingAlgorithmFlag, bytes int, duration time.Duration) {
	if m != nil {
		m.RecordDecode(version, kind, bytes, duration)
	}
}

// RecordError records a failed operation, tolerating a nil m.
func RecordError(m CodecMetrics, op string, errKind string) {
	if m != nil {
		m.RecordError(op, errKind)
	}
}

// RecordGrowth records a buffer reallocation, tolerating a nil m.
func RecordGrowth(m CodecMetrics, newCapacity int) {
	if m != nil {
		m.RecordGrowth(newCapacity)
	}
}
