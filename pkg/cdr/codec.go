package cdr

// Codec is a stateful encoder/decoder bound to exactly one Buffer. It
// tracks the wire version, endianness, whether FastCDR (no alignment) is
// active, and the extensibility kind of whatever composite-type block is
// currently open.
//
// A Codec is not safe for concurrent use; producers that want parallelism
// must use distinct Codec instances over distinct Buffers (spec §5).
type Codec struct {
	buf        *Buffer
	version    CdrVersion
	endianness Endianness
	fastCDR    bool
	activeKind ExtensibilityKind
	encodingID EncodingAlgorithmFlag
	ddsOptions [2]byte
}

// Option configures a Codec at construction time.
type Option func(*Codec)

// WithFastCDR disables all alignment padding. Scalar byte order still
// follows endianness regardless: FastCDR only skips padding, never the
// per-byte placement that orders a value for the wire.
func WithFastCDR() Option {
	return func(c *Codec) { c.fastCDR = true }
}

// WithDDSOptions sets the 2 reserved option bytes written as part of the
// encapsulation header (default {0,0}).
func WithDDSOptions(b0, b1 byte) Option {
	return func(c *Codec) { c.ddsOptions = [2]byte{b0, b1} }
}

// NewCodec constructs a Codec bound to buf, using version/endianness for
// wire encoding. endianness selects the byte order scalars are written
// in, independent of the host's own byte order.
func NewCodec(buf *Buffer, endianness Endianness, version CdrVersion, opts ...Option) *Codec {
	c := &Codec{
		buf:        buf,
		version:    version,
		endianness: endianness,
		activeKind: Final,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Buffer returns the Buffer this codec is bound to.
func (c *Codec) Buffer() *Buffer { return c.buf }

// Version returns the configured CdrVersion.
func (c *Codec) Version() CdrVersion { return c.version }

// Endianness returns the configured wire Endianness.
func (c *Codec) Endianness() Endianness { return c.endianness }

// GetEncodingFlag returns the EncodingAlgorithmFlag currently selected for
// composite-type blocks (set by SetEncodingFlag or begin_serialize_type).
func (c *Codec) GetEncodingFlag() EncodingAlgorithmFlag { return c.encodingID }

// SetEncodingFlag selects which extensibility grammar subsequent
// begin_serialize_type calls use by default.
func (c *Codec) SetEncodingFlag(f EncodingAlgorithmFlag) { c.encodingID = f }

// Reset rewinds the bound buffer to its origin (current = begin,
// align_origin = begin).
func (c *Codec) Reset() {
	c.buf.Reset()
	c.activeKind = Final
}

// Jump advances the cursor by n bytes without reading or writing.
func (c *Codec) Jump(n int) error {
	return c.buf.Jump(n)
}

// GetSerializedDataLength returns the number of bytes written/consumed so far.
func (c *Codec) GetSerializedDataLength() int {
	return c.buf.Len()
}

// maxAlign returns the alignment cap for the active version/mode: 8 for
// classic CDR and XCDRv1 (long double aligns to 8 but occupies 16 bytes
// on the wire), 4 for XCDRv2 (scalars >= 8 bytes wide are capped at 4-byte
// alignment; long double is the one exception, still 8/16), and always 0
// under FastCDR.
func (c *Codec) maxAlign() int {
	if c.fastCDR {
		return 0
	}
	if c.version == XCDRv2 {
		return 4
	}
	return 8
}

// alignWidth returns the alignment actually applied for a field of wire
// width w, given the active version's cap. Long double (w == 16) is
// special-cased by callers to align as 8 regardless of version.
func (c *Codec) alignWidth(w int) int {
	maxA := c.maxAlign()
	if maxA == 0 {
		return 0
	}
	if w > maxA {
		return maxA
	}
	return w
}

// padTo returns the number of padding bytes needed before a field of
// alignment a, measured from the buffer's align origin.
func (c *Codec) padTo(a int) int {
	if a <= 1 {
		return 0
	}
	rel := c.buf.Current() - c.buf.AlignOrigin()
	rem := rel % a
	if rem == 0 {
		return 0
	}
	return a - rem
}

var zeroPad = make([]byte, 16)

// align writes padTo(a) zero bytes before the next field.
func (c *Codec) align(a int) error {
	n := c.padTo(a)
	if n == 0 {
		return nil
	}
	return c.buf.Write(zeroPad[:n])
}

// alignRead skips padTo(a) bytes before the next field during decode.
func (c *Codec) alignRead(a int) error {
	n := c.padTo(a)
	if n == 0 {
		return nil
	}
	_, err := c.buf.Read(n)
	return err
}
