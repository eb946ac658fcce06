package prometheus

import (
	"testing"
	"time"

	"github.com/marmos91/gocdr/pkg/cdr"
	"github.com/marmos91/gocdr/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewCodecMetrics_NilWhenDisabled(t *testing.T) {
	metrics.Reset()
	if m := NewCodecMetrics(); m != nil {
		t.Error("Expected NewCodecMetrics to return nil when metrics are disabled")
	}
}

func TestNewCodecMetrics_CreatesAllMetrics(t *testing.T) {
	metrics.Reset()
	metrics.InitRegistry()
	defer metrics.Reset()

	m := NewCodecMetrics().(*codecMetrics)
	if m.encodeOperations == nil {
		t.Error("encodeOperations not initialized")
	}
	if m.encodeDuration == nil {
		t.Error("encodeDuration not initialized")
	}
	if m.encodeBytes == nil {
		t.Error("encodeBytes not initialized")
	}
	if m.decodeOperations == nil {
		t.Error("decodeOperations not initialized")
	}
	if m.errors == nil {
		t.Error("errors not initialized")
	}
	if m.bufferGrowths == nil {
		t.Error("bufferGrowths not initialized")
	}
}

func TestCodecMetrics_RecordEncode(t *testing.T) {
	metrics.Reset()
	metrics.InitRegistry()
	defer metrics.Reset()

	m := NewCodecMetrics()
	m.RecordEncode(cdr.XCDRv2, cdr.PlCdr2, 128, 5*time.Millisecond)

	cm := m.(*codecMetrics)
	count := testutil.ToFloat64(cm.encodeOperations.WithLabelValues("XCDRv2", "PlCdr2"))
	if count != 1 {
		t.Errorf("Expected encode operation count 1, got %v", count)
	}
}

func TestCodecMetrics_RecordError(t *testing.T) {
	metrics.Reset()
	metrics.InitRegistry()
	defer metrics.Reset()

	m := NewCodecMetrics()
	m.RecordError("decode", "short_buffer")

	cm := m.(*codecMetrics)
	count := testutil.ToFloat64(cm.errors.WithLabelValues("decode", "short_buffer"))
	if count != 1 {
		t.Errorf("Expected error count 1, got %v", count)
	}
}

func TestCodecMetrics_RecordGrowth(t *testing.T) {
	metrics.Reset()
	metrics.InitRegistry()
	defer metrics.Reset()

	m := NewCodecMetrics()
	m.RecordGrowth(8192)

	cm := m.(*codecMetrics)
	if got := testutil.ToFloat64(cm.bufferCapacity); got != 8192 {
		t.Errorf("Expected buffer capacity 8192, got %v", got)
	}
}

func TestNilCodecMetrics_DoesNotPanic(t *testing.T) {
	var m *codecMetrics
	m.RecordEncode(cdr.CorbaCdr, cdr.PlainCdr1, 0, 0)
	m.RecordDecode(cdr.CorbaCdr, cdr.PlainCdr1, 0, 0)
	m.RecordError("encode", "x")
	m.RecordGrowth(0)
}
