package logger

import "log/slog"

// Standard field keys for structured logging. Use these keys consistently
// across all log statements so a single query can aggregate across every
// codec operation regardless of which CLI command emitted it.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Codec configuration
	// ========================================================================
	KeyCdrVersion  = "cdr_version"  // CorbaCdr, XCDRv1, XCDRv2
	KeyEndianness  = "endianness"   // big, little
	KeyFastCDR     = "fastcdr"      // whether alignment padding is disabled
	KeyEncodingKind = "encoding_kind" // PlainCdr1, PlCdr1, PlainCdr2, DelimitCdr2, PlCdr2

	// ========================================================================
	// Composite-type framing
	// ========================================================================
	KeyExtensibility = "extensibility" // Final, Appendable, Mutable
	KeyMemberID      = "member_id"     // wire member identifier
	KeyMustUnderstand = "must_understand"
	KeyAlignOrigin   = "align_origin" // offset alignment is measured from

	// ========================================================================
	// Operation metadata
	// ========================================================================
	KeyOperation  = "operation"   // encode, decode, inspect
	KeyBytes      = "bytes"       // byte count written/consumed
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
	KeySource     = "source"      // input source: file, stdin, generated

	// ========================================================================
	// CLI / session
	// ========================================================================
	KeySessionID = "session_id" // correlation ID for one CLI invocation
	KeyFile      = "file"       // path to a frame file being encoded/decoded
)

// TraceID returns a slog.Attr for OpenTelemetry trace ID.
func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }

// SpanID returns a slog.Attr for OpenTelemetry span ID.
func SpanID(id string) slog.Attr { return slog.String(KeySpanID, id) }

// CdrVersion returns a slog.Attr for the active CDR dialect.
func CdrVersion(v string) slog.Attr { return slog.String(KeyCdrVersion, v) }

// Endianness returns a slog.Attr for the wire byte order.
func Endianness(e string) slog.Attr { return slog.String(KeyEndianness, e) }

// FastCDR returns a slog.Attr for whether alignment padding is disabled.
func FastCDR(enabled bool) slog.Attr { return slog.Bool(KeyFastCDR, enabled) }

// EncodingKind returns a slog.Attr for the active EncodingAlgorithmFlag.
func EncodingKind(k string) slog.Attr { return slog.String(KeyEncodingKind, k) }

// Extensibility returns a slog.Attr for the active composite-type kind.
func Extensibility(k string) slog.Attr { return slog.String(KeyExtensibility, k) }

// MemberID returns a slog.Attr for a wire member identifier.
func MemberID(id uint32) slog.Attr { return slog.Uint64(KeyMemberID, uint64(id)) }

// MustUnderstand returns a slog.Attr for a member's must-understand flag.
func MustUnderstand(v bool) slog.Attr { return slog.Bool(KeyMustUnderstand, v) }

// AlignOrigin returns a slog.Attr for the buffer offset alignment is
// currently measured from.
func AlignOrigin(offset int) slog.Attr { return slog.Int(KeyAlignOrigin, offset) }

// Operation returns a slog.Attr for the CLI operation name.
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }

// Bytes returns a slog.Attr for a byte count.
func Bytes(n int) slog.Attr { return slog.Int(KeyBytes, n) }

// DurationMs returns a slog.Attr for duration in milliseconds.
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Err returns a slog.Attr for an error, or a zero Attr for a nil error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Source returns a slog.Attr for the input source of a frame.
func Source(src string) slog.Attr { return slog.String(KeySource, src) }

// SessionID returns a slog.Attr for a CLI invocation's correlation ID.
func SessionID(id string) slog.Attr { return slog.String(KeySessionID, id) }

// File returns a slog.Attr for a frame file path.
func File(path string) slog.Attr { return slog.String(KeyFile, path) }
