// Package cdr implements the OMG Common Data Representation (CDR) wire
// formats used by DDS middleware: classic CDR (CORBA-aligned), XCDRv1
// (Parameter-List / mutable encoding) and XCDRv2 (delimited and
// parameter-list encoding with 32-bit headers), plus a non-standard
// "FastCDR" mode that strips all alignment padding for in-process speed.
//
// The package owns the byte-level state machine that converts between
// in-memory values and a contiguous octet sequence: a growable or
// borrowed-fixed buffer, alignment-aware scalar I/O with endianness
// conversion, length/member-header selection (ShortMemberHeader,
// LongMemberHeader, DHEADER, EMHEADER1, sentinel), and the scoped
// begin/end_serialize_type protocol that the four extensibility kinds
// (final, appendable, mutable, plain) require.
//
// The only package of this module it imports is pkg/bufpool, which
// backs the growable buffer. It is protocol-agnostic, knowing nothing
// about what the encoded values mean, only how the wire format is
// structured.
//
// Reference: OMG Interface Definition Language, chapter "CORBA Common
// Data Representation (CDR)", and the DDS-XTypes specification for the
// XCDRv1/XCDRv2 extensibility kinds.
package cdr
