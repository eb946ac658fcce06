package cdr

// MemberFrame is one member's wire framing as captured by an
// introspection walk: an id, the header flavor that announced it, and
// its raw, uninterpreted payload bytes. Introspection tools (cdrdump's
// decode/inspect commands) use this instead of a typed MemberDispatcher
// when the caller does not know each member's Go type ahead of time.
type MemberFrame struct {
	ID     uint32
	Header string // "none", "short", "long", "em1"
	Raw    []byte
}

// DeserializeFrames decodes a composite-type block of the given kind,
// returning one MemberFrame per member found.
//
// Final and Appendable blocks carry no per-member framing (spec
// §4.5.7): a reader that doesn't know each member's type cannot tell
// where one member ends and the next begins. For those two kinds,
// DeserializeFrames returns a single frame spanning the block's entire
// remaining payload. Mutable blocks (PlCdr1, PlCdr2) are fully
// self-describing and are walked member by member.
func (c *Codec) DeserializeFrames(kind ExtensibilityKind) ([]MemberFrame, error) {
	switch c.effectiveFlag(kind) {
	case PlainCdr1, PlainCdr2:
		return c.frameOpaqueBlock(c.buf.End())
	case DelimitCdr2:
		return c.frameDelimitedOpaqueBlock()
	case PlCdr1:
		return c.framePlCdr1()
	case PlCdr2:
		return c.framePlCdr2()
	}
	return nil, wrapErr("deserialize_frames", c.buf.Current(), ErrBadParam)
}

func (c *Codec) frameOpaqueBlock(limit int) ([]MemberFrame, error) {
	if c.buf.Current() >= limit {
		return nil, nil
	}
	raw, err := c.buf.Read(limit - c.buf.Current())
	if err != nil {
		return nil, err
	}
	return []MemberFrame{{ID: 0, Header: "none", Raw: raw}}, nil
}

func (c *Codec) frameDelimitedOpaqueBlock() ([]MemberFrame, error) {
	if err := c.alignRead(4); err != nil {
		return nil, err
	}
	dheader, err := c.readRaw32()
	if err != nil {
		return nil, err
	}
	prevOrigin := c.buf.AlignOrigin()
	c.buf.SetAlignOrigin(c.buf.Current())
	defer c.buf.SetAlignOrigin(prevOrigin)

	limit := c.buf.Current() + int(dheader)
	return c.frameOpaqueBlock(limit)
}

func (c *Codec) framePlCdr1() ([]MemberFrame, error) {
	var frames []MemberFrame
	for {
		headerStart := c.buf.Current()
		tagWord, err := c.readRaw16()
		if err != nil {
			return nil, err
		}
		rawID := uint32(tagWord &^ (PIDFlagMustUnderstand | PIDFlagImplementation))

		switch rawID {
		case PIDSentinel:
			if _, err := c.readRaw16(); err != nil {
				return nil, err
			}
			return frames, nil
		case PIDExtended:
			if _, err := c.readRaw16(); err != nil { // placeholder, always 8
				return nil, err
			}
			id, err := c.readRaw32()
			if err != nil {
				return nil, err
			}
			length, err := c.readRaw32()
			if err != nil {
				return nil, err
			}
			raw, err := c.buf.Read(int(length))
			if err != nil {
				return nil, err
			}
			frames = append(frames, MemberFrame{ID: id, Header: "long", Raw: raw})
			if err := c.skipMemberPadTo4(headerStart); err != nil {
				return nil, err
			}
		default:
			length, err := c.readRaw16()
			if err != nil {
				return nil, err
			}
			raw, err := c.buf.Read(int(length))
			if err != nil {
				return nil, err
			}
			frames = append(frames, MemberFrame{ID: rawID, Header: "short", Raw: raw})
			if err := c.skipMemberPadTo4(headerStart); err != nil {
				return nil, err
			}
		}
	}
}

func (c *Codec) framePlCdr2() ([]MemberFrame, error) {
	if err := c.alignRead(4); err != nil {
		return nil, err
	}
	dheader, err := c.readRaw32()
	if err != nil {
		return nil, err
	}
	prevOrigin := c.buf.AlignOrigin()
	c.buf.SetAlignOrigin(c.buf.Current())
	defer c.buf.SetAlignOrigin(prevOrigin)
	limit := c.buf.Current() + int(dheader)

	var frames []MemberFrame
	for c.buf.Current() < limit {
		id, _, lc, err := c.readEMHeader1()
		if err != nil {
			return nil, err
		}
		length, err := c.lcLength(lc)
		if err != nil {
			return nil, err
		}
		raw, err := c.buf.Read(length)
		if err != nil {
			return nil, err
		}
		frames = append(frames, MemberFrame{ID: id, Header: "em1", Raw: raw})
	}
	if c.buf.Current() < limit {
		if err := c.buf.JumpTo(limit); err != nil {
			return nil, err
		}
	}
	return frames, nil
}
