package cdr

// Member-header framing for the mutable extensibility kinds: the
// ShortMemberHeader/LongMemberHeader/sentinel of PlCdr1 (XCDRv1 mutable,
// spec §4.5.2) and the EMHEADER1 of PlCdr2 (XCDRv2 mutable, spec §4.5.5).
// These are raw fixed-width fields; none of them carry alignment padding
// of their own, that is applied by the xcdr layer around the header and
// its payload.

// writeRaw16/readRaw16 write/read a 16-bit word in the codec's
// endianness with no alignment.
func (c *Codec) writeRaw16(v uint16) error {
	b := []byte{byte(v), byte(v >> 8)}
	if c.endianness == BigEndian {
		b[0], b[1] = b[1], b[0]
	}
	return c.buf.Write(b)
}

func (c *Codec) readRaw16() (uint16, error) {
	raw, err := c.buf.Read(2)
	if err != nil {
		return 0, err
	}
	if c.endianness == BigEndian {
		return uint16(raw[0])<<8 | uint16(raw[1]), nil
	}
	return uint16(raw[1])<<8 | uint16(raw[0]), nil
}

// encodeRaw32 returns the wire bytes of a 32-bit word in the codec's
// endianness, shared by writeRaw32 (append) and patchRaw32 (back-patch).
func (c *Codec) encodeRaw32(v uint32) []byte {
	b := make([]byte, 4)
	for i := 0; i < 4; i++ {
		shift := 8 * i
		if c.endianness == BigEndian {
			shift = 8 * (3 - i)
		}
		b[i] = byte(v >> uint(shift))
	}
	return b
}

func (c *Codec) writeRaw32(v uint32) error { return c.buf.Write(c.encodeRaw32(v)) }

func (c *Codec) patchRaw32(offset int, v uint32) error {
	return c.buf.PatchAt(offset, c.encodeRaw32(v))
}

func (c *Codec) readRaw32() (uint32, error) {
	raw, err := c.buf.Read(4)
	if err != nil {
		return 0, err
	}
	var v uint32
	for i := 0; i < 4; i++ {
		shift := 8 * i
		if c.endianness == BigEndian {
			shift = 8 * (3 - i)
		}
		v |= uint32(raw[i]) << uint(shift)
	}
	return v, nil
}

// writeShortMemberHeader writes flags+id (2 bytes) then the payload
// length (2 bytes). Callers must ensure id < shortHeaderIDLimit and
// length < shortHeaderLengthLimit.
func (c *Codec) writeShortMemberHeader(id uint32, mustUnderstand bool, length int) error {
	word := uint16(id)
	if mustUnderstand {
		word |= PIDFlagMustUnderstand
	}
	if err := c.writeRaw16(word); err != nil {
		return err
	}
	return c.writeRaw16(uint16(length))
}

// writeLongMemberHeader writes the extended form: flags+PIDExtended,
// a 2-byte length field fixed at 8 announcing 8 more header bytes, the real
// 4-byte id, then the real 4-byte length.
func (c *Codec) writeLongMemberHeader(id uint32, mustUnderstand bool, length int) error {
	word := uint16(PIDExtended)
	if mustUnderstand {
		word |= PIDFlagMustUnderstand
	}
	if err := c.writeRaw16(word); err != nil {
		return err
	}
	if err := c.writeRaw16(8); err != nil {
		return err
	}
	if err := c.writeRaw32(id); err != nil {
		return err
	}
	return c.writeRaw32(uint32(length))
}

// writeSentinel emits the PL_CDR end-of-composite marker.
func (c *Codec) writeSentinel() error {
	if err := c.writeRaw16(uint16(PIDSentinel)); err != nil {
		return err
	}
	return c.writeRaw16(0)
}

// writeEMHeader1 packs id (28 bits), LC (3 bits) and the must-understand
// flag into a single 32-bit word: bit 31 is must-understand, bits 28-30
// carry LC, bits 0-27 carry id.
func (c *Codec) writeEMHeader1(id uint32, mustUnderstand bool, lc uint8) error {
	word := (id & 0x0FFFFFFF) | (uint32(lc&0x7) << 28)
	if mustUnderstand {
		word |= 0x80000000
	}
	return c.writeRaw32(word)
}

func (c *Codec) readEMHeader1() (id uint32, mustUnderstand bool, lc uint8, err error) {
	word, err := c.readRaw32()
	if err != nil {
		return 0, false, 0, err
	}
	mustUnderstand = word&0x80000000 != 0
	lc = uint8((word >> 28) & 0x7)
	id = word & 0x0FFFFFFF
	return id, mustUnderstand, lc, nil
}

// padMemberTo4 writes zero bytes, if needed, so that current - headerStart
// is a multiple of 4 (spec §4.5.2: PlCdr1 padding is measured from each
// member's own header start, not the stream's align origin).
func (c *Codec) padMemberTo4(headerStart int) error {
	rem := (c.buf.Current() - headerStart) % 4
	if rem == 0 {
		return nil
	}
	return c.buf.Write(zeroPad[:4-rem])
}

func (c *Codec) skipMemberPadTo4(headerStart int) error {
	rem := (c.buf.Current() - headerStart) % 4
	if rem == 0 {
		return nil
	}
	_, err := c.buf.Read(4 - rem)
	return err
}
