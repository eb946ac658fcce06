package cdr

// CdrVersion selects which CDR dialect a Codec encodes/decodes.
type CdrVersion int

const (
	// CorbaCdr is classic CDR (CORBA-aligned): no extensibility framing.
	CorbaCdr CdrVersion = iota
	// XCDRv1 adds the Parameter-List (PL_CDR) mutable encoding.
	XCDRv1
	// XCDRv2 adds delimited (DHEADER) and parameter-list-v2 (EMHEADER1) encoding.
	XCDRv2
)

func (v CdrVersion) String() string {
	switch v {
	case CorbaCdr:
		return "CorbaCdr"
	case XCDRv1:
		return "XCDRv1"
	case XCDRv2:
		return "XCDRv2"
	default:
		return "unknown"
	}
}

// Endianness selects multi-byte scalar byte order on the wire.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

func (e Endianness) String() string {
	if e == LittleEndian {
		return "little"
	}
	return "big"
}

// EncodingAlgorithmFlag is the high-bits value of encapsulation byte 1,
// selecting the extensibility grammar a composite-type block uses.
type EncodingAlgorithmFlag int

const (
	// PlainCdr1 is final, classic/XCDRv1: no header, no sentinel.
	PlainCdr1 EncodingAlgorithmFlag = 0
	// PlCdr1 is mutable, XCDRv1: ShortMemberHeader/LongMemberHeader + sentinel.
	PlCdr1 EncodingAlgorithmFlag = 2
	// PlainCdr2 is final, XCDRv2: like PlainCdr1 but 4-byte-capped alignment.
	PlainCdr2 EncodingAlgorithmFlag = 6
	// DelimitCdr2 is appendable, XCDRv2: DHEADER-prefixed block.
	DelimitCdr2 EncodingAlgorithmFlag = 8
	// PlCdr2 is mutable, XCDRv2: DHEADER + EMHEADER1 per member.
	PlCdr2 EncodingAlgorithmFlag = 10
)

func (f EncodingAlgorithmFlag) String() string {
	switch f {
	case PlainCdr1:
		return "PlainCdr1"
	case PlCdr1:
		return "PlCdr1"
	case PlainCdr2:
		return "PlainCdr2"
	case DelimitCdr2:
		return "DelimitCdr2"
	case PlCdr2:
		return "PlCdr2"
	default:
		return "unknown"
	}
}

// Reserved member-id values and flag bits (spec §3.1). Compile-time
// constants only; the codec never mutates process-wide state for these.
const (
	// PIDSentinel marks the end of a PL_CDR (XCDRv1 mutable) member stream.
	PIDSentinel uint32 = 0x3F02
	// PIDExtended marks a LongMemberHeader in PL_CDR (XCDRv1 mutable).
	PIDExtended uint32 = 0x3F01

	// PIDFlagMustUnderstand marks a member a reader must not silently skip.
	PIDFlagMustUnderstand uint16 = 0x4000
	// PIDFlagImplementation is propagated but never interpreted by this codec.
	PIDFlagImplementation uint16 = 0x8000

	// shortHeaderIDLimit is the largest member id ShortMemberHeader can carry.
	shortHeaderIDLimit uint32 = 0x3F00
	// shortHeaderLengthLimit is the largest payload length ShortMemberHeader can carry.
	shortHeaderLengthLimit = 1 << 16
)

// ExtensibilityKind names the four shapes a composite type's member stream
// can take; it is the argument to begin/end_serialize_type and selects
// which of the five EncodingAlgorithmFlag grammars applies for the active
// CdrVersion.
type ExtensibilityKind int

const (
	Final ExtensibilityKind = iota
	Appendable
	Mutable
)

func (k ExtensibilityKind) String() string {
	switch k {
	case Final:
		return "Final"
	case Appendable:
		return "Appendable"
	case Mutable:
		return "Mutable"
	default:
		return "unknown"
	}
}
