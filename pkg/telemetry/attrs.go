package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for codec operation spans.
// Protocol-agnostic, mirrors the fs.* / protocol.* naming convention used
// for OpenTelemetry semantic-convention-adjacent keys elsewhere in this stack.
const (
	AttrCdrVersion    = "cdr.version"     // CorbaCdr, XCDRv1, XCDRv2
	AttrCdrEndianness = "cdr.endianness"  // big, little
	AttrCdrKind       = "cdr.kind"        // PlainCdr1, PlCdr1, PlainCdr2, DelimitCdr2, PlCdr2
	AttrCdrBytes      = "cdr.bytes"       // bytes encoded/decoded
	AttrCdrMemberID   = "cdr.member_id"   // member identifier under dispatch
	AttrCdrOperation  = "cdr.operation"   // "encode" or "decode"
)

// Version returns an attribute.KeyValue for the CDR version in play.
func Version(v string) attribute.KeyValue {
	return attribute.String(AttrCdrVersion, v)
}

// Endianness returns an attribute.KeyValue for the wire endianness.
func Endianness(e string) attribute.KeyValue {
	return attribute.String(AttrCdrEndianness, e)
}

// Kind returns an attribute.KeyValue for the active encoding algorithm flag.
func Kind(k string) attribute.KeyValue {
	return attribute.String(AttrCdrKind, k)
}

// Bytes returns an attribute.KeyValue for a byte count.
func Bytes(n int) attribute.KeyValue {
	return attribute.Int(AttrCdrBytes, n)
}

// MemberID returns an attribute.KeyValue for a member identifier.
func MemberID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrCdrMemberID, int64(id))
}

// StartCodecSpan starts a span for a top-level encode or decode invocation.
func StartCodecSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{attribute.String(AttrCdrOperation, operation)}, attrs...)
	return StartSpan(ctx, "cdrdump."+operation, trace.WithAttributes(all...))
}
