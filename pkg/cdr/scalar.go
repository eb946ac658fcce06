package cdr

import "math"

// Scalar I/O. Each primitive width gets its own aligned read/write pair.
// Endianness conversion is always a byteswap, never a scaled conversion,
// so NaN float payloads round-trip bit-for-bit (spec §4.2). Signed and
// unsigned forms of the same width share the same wire representation;
// the codec never sign-extends.

// WriteUint8 writes a single byte. Width 1 is never aligned beyond itself.
func (c *Codec) WriteUint8(v uint8) error {
	return c.buf.Write([]byte{v})
}

// ReadUint8 reads a single byte.
func (c *Codec) ReadUint8() (uint8, error) {
	b, err := c.buf.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Codec) WriteInt8(v int8) error  { return c.WriteUint8(uint8(v)) }
func (c *Codec) ReadInt8() (int8, error) { v, err := c.ReadUint8(); return int8(v), err }

// WriteBool writes a boolean as a single byte, {0,1}. Any other stored
// byte value is a BadParam on decode (spec §4.5.8, §8.4 scenario 6 analog).
func (c *Codec) WriteBool(v bool) error {
	if v {
		return c.WriteUint8(1)
	}
	return c.WriteUint8(0)
}

// ReadBool reads a boolean byte, rejecting any value other than 0 or 1.
func (c *Codec) ReadBool() (bool, error) {
	v, err := c.ReadUint8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, wrapErr("read bool", c.buf.Current()-1, ErrBadParam)
	}
}

func (c *Codec) putWidth(w int, bits uint64) error {
	a := c.alignWidth(w)
	if err := c.align(a); err != nil {
		return err
	}
	buf := make([]byte, w)
	for i := 0; i < w; i++ {
		shift := 8 * i
		if c.endianness == BigEndian {
			shift = 8 * (w - 1 - i)
		}
		buf[i] = byte(bits >> uint(shift))
	}
	return c.buf.Write(buf)
}

func (c *Codec) getWidth(w int) (uint64, error) {
	a := c.alignWidth(w)
	if err := c.alignRead(a); err != nil {
		return 0, err
	}
	raw, err := c.buf.Read(w)
	if err != nil {
		return 0, err
	}
	var bits uint64
	for i := 0; i < w; i++ {
		shift := 8 * i
		if c.endianness == BigEndian {
			shift = 8 * (w - 1 - i)
		}
		bits |= uint64(raw[i]) << uint(shift)
	}
	return bits, nil
}

// WriteUint16/ReadUint16, WriteInt16/ReadInt16 — 2-byte fields.
func (c *Codec) WriteUint16(v uint16) error { return c.putWidth(2, uint64(v)) }
func (c *Codec) ReadUint16() (uint16, error) {
	v, err := c.getWidth(2)
	return uint16(v), err
}
func (c *Codec) WriteInt16(v int16) error { return c.WriteUint16(uint16(v)) }
func (c *Codec) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// WriteUint32/ReadUint32, WriteInt32/ReadInt32 — 4-byte fields.
func (c *Codec) WriteUint32(v uint32) error { return c.putWidth(4, uint64(v)) }
func (c *Codec) ReadUint32() (uint32, error) {
	v, err := c.getWidth(4)
	return uint32(v), err
}
func (c *Codec) WriteInt32(v int32) error { return c.WriteUint32(uint32(v)) }
func (c *Codec) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// WriteUint64/ReadUint64, WriteInt64/ReadInt64 — 8-byte ("hyper") fields.
func (c *Codec) WriteUint64(v uint64) error { return c.putWidth(8, v) }
func (c *Codec) ReadUint64() (uint64, error) {
	return c.getWidth(8)
}
func (c *Codec) WriteInt64(v int64) error { return c.WriteUint64(uint64(v)) }
func (c *Codec) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

// WriteFloat32/ReadFloat32 — IEEE 754 single precision.
func (c *Codec) WriteFloat32(v float32) error {
	return c.putWidth(4, uint64(math.Float32bits(v)))
}
func (c *Codec) ReadFloat32() (float32, error) {
	v, err := c.getWidth(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

// WriteFloat64/ReadFloat64 — IEEE 754 double precision.
func (c *Codec) WriteFloat64(v float64) error {
	return c.putWidth(8, math.Float64bits(v))
}
func (c *Codec) ReadFloat64() (float64, error) {
	v, err := c.getWidth(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// WriteLongDouble writes a 16-byte wide float. Long double keeps 8-byte
// alignment and 16-byte payload in every version, including XCDRv2 where
// other wide scalars are capped at 4-byte alignment (spec §4.2). The
// payload itself is carried as raw bytes: this codec does not attempt to
// reproduce host-specific 80/128-bit extended-precision semantics, it
// only guarantees the 16-byte slot and alignment contract.
func (c *Codec) WriteLongDouble(hi, lo uint64) error {
	a := 8
	if c.fastCDR {
		a = 0
	}
	if err := c.align(a); err != nil {
		return err
	}
	first, second := hi, lo
	if c.endianness == LittleEndian {
		first, second = lo, hi
	}
	if err := c.rawWrite64(first); err != nil {
		return err
	}
	return c.rawWrite64(second)
}

// ReadLongDouble reads a 16-byte wide float, mirroring WriteLongDouble.
func (c *Codec) ReadLongDouble() (hi, lo uint64, err error) {
	a := 8
	if c.fastCDR {
		a = 0
	}
	if err = c.alignRead(a); err != nil {
		return 0, 0, err
	}
	first, ferr := c.rawRead64()
	if ferr != nil {
		return 0, 0, ferr
	}
	second, serr := c.rawRead64()
	if serr != nil {
		return 0, 0, serr
	}
	if c.endianness == LittleEndian {
		return second, first, nil
	}
	return first, second, nil
}

// rawWrite64/rawRead64 write/read an 8-byte word with endianness
// conversion but no alignment padding of their own (callers align first).
func (c *Codec) rawWrite64(v uint64) error {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		shift := 8 * i
		if c.endianness == BigEndian {
			shift = 8 * (7 - i)
		}
		buf[i] = byte(v >> uint(shift))
	}
	return c.buf.Write(buf)
}

func (c *Codec) rawRead64() (uint64, error) {
	raw, err := c.buf.Read(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		shift := 8 * i
		if c.endianness == BigEndian {
			shift = 8 * (7 - i)
		}
		v |= uint64(raw[i]) << uint(shift)
	}
	return v, nil
}
