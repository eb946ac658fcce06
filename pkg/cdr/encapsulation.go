package cdr

// Encapsulation & options (spec §4.4). The 4-byte envelope is written at
// offset 0 and advertises the dialect and endianness to a peer; only the
// (version, EncodingAlgorithmFlag) pairs below are legal.

// validEncodingFlag reports whether flag is legal for version.
func validEncodingFlag(version CdrVersion, flag EncodingAlgorithmFlag) bool {
	switch version {
	case XCDRv2:
		switch flag {
		case PlainCdr2, DelimitCdr2, PlCdr2:
			return true
		}
		return false
	default: // CorbaCdr, XCDRv1
		switch flag {
		case PlainCdr1, PlCdr1:
			return true
		}
		return false
	}
}

// SerializeEncapsulation writes the 4-byte envelope: reserved 0x00,
// encoding-identifier byte (EncodingAlgorithmFlag value with the
// endianness folded into its low bit: 1 = little, 0 = big), and 2
// reserved option bytes.
func (c *Codec) SerializeEncapsulation(flag EncodingAlgorithmFlag) error {
	if !validEncodingFlag(c.version, flag) {
		return wrapErr("serialize_encapsulation", c.buf.Current(), ErrBadParam)
	}
	c.encodingID = flag
	if err := c.buf.Write([]byte{0x00}); err != nil {
		return err
	}
	idByte := byte(flag)
	if c.endianness == LittleEndian {
		idByte |= 0x01
	}
	if err := c.buf.Write([]byte{idByte}); err != nil {
		return err
	}
	if err := c.buf.Write(c.ddsOptions[:]); err != nil {
		return err
	}
	c.buf.SetAlignOrigin(c.buf.Current())
	return nil
}

// DeserializeEncapsulation reads and validates the 4-byte envelope,
// resetting the codec's endianness to whatever the envelope advertises
// and setting align_origin to just after it (spec §4.4: "alignment starts
// from 0" relative to the payload, not the absolute buffer start).
func (c *Codec) DeserializeEncapsulation() (EncodingAlgorithmFlag, error) {
	reserved, err := c.buf.Read(1)
	if err != nil {
		return 0, err
	}
	if reserved[0] != 0x00 {
		return 0, wrapErr("read_encapsulation", c.buf.Current()-1, ErrBadParam)
	}
	idByte, err := c.buf.Read(1)
	if err != nil {
		return 0, err
	}
	if idByte[0]&0x01 == 1 {
		c.endianness = LittleEndian
	} else {
		c.endianness = BigEndian
	}
	flag := EncodingAlgorithmFlag(idByte[0] &^ 0x01)
	if !validEncodingFlag(c.version, flag) {
		return 0, wrapErr("read_encapsulation", c.buf.Current()-1, ErrBadParam)
	}
	if _, err := c.buf.Read(2); err != nil { // reserved options
		return 0, err
	}
	c.encodingID = flag
	c.buf.SetAlignOrigin(c.buf.Current())
	return flag, nil
}
