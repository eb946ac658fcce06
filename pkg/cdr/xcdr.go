package cdr

// The composite-type protocol (spec §4.5, §4.5.7): begin_serialize_type /
// serialize_member / end_serialize_type on encode, deserialize_type on
// decode. Each extensibility kind (Final, Appendable, Mutable) maps to a
// different wire grammar depending on the active CdrVersion; effectiveFlag
// resolves that mapping once per call so the rest of this file only
// switches on the resolved EncodingAlgorithmFlag.

// effectiveFlag returns which of the five EncodingAlgorithmFlag grammars
// governs a composite block of the given kind under c's configured
// version. XCDRv1/CorbaCdr have no appendable grammar of their own; an
// Appendable block under those versions degrades to PlainCdr1 (no
// evolution support, matches classic CDR behavior).
func (c *Codec) effectiveFlag(kind ExtensibilityKind) EncodingAlgorithmFlag {
	if c.version == XCDRv2 {
		switch kind {
		case Appendable:
			return DelimitCdr2
		case Mutable:
			return PlCdr2
		default:
			return PlainCdr2
		}
	}
	if kind == Mutable {
		return PlCdr1
	}
	return PlainCdr1
}

// EncodingFlagFor exposes effectiveFlag for callers that need to write the
// encapsulation header (spec §4.4) ahead of a BeginSerializeType call for
// the same kind, without duplicating the version/kind resolution table.
func (c *Codec) EncodingFlagFor(kind ExtensibilityKind) EncodingAlgorithmFlag {
	return c.effectiveFlag(kind)
}

// BeginSerializeType opens a composite-type block of the given kind,
// writing whatever prefix its grammar requires (a DHEADER placeholder for
// Appendable/Mutable under XCDRv2) and switching the codec's active kind.
// The returned State must be passed to the matching EndSerializeType.
func (c *Codec) BeginSerializeType(kind ExtensibilityKind) (State, error) {
	outer := State{
		Current:     c.buf.Current(),
		AlignOrigin: c.buf.AlignOrigin(),
		Kind:        c.activeKind,
		dheaderAt:   -1,
	}
	c.activeKind = kind

	switch c.effectiveFlag(kind) {
	case DelimitCdr2, PlCdr2:
		if err := c.align(4); err != nil {
			return outer, err
		}
		outer.dheaderAt = c.buf.Current()
		if err := c.writeRaw32(0); err != nil {
			return outer, err
		}
		c.buf.SetAlignOrigin(c.buf.Current())
	}
	return outer, nil
}

// EndSerializeType closes a composite-type block previously opened with
// BeginSerializeType: it emits a sentinel (PlCdr1) or back-patches the
// reserved DHEADER (DelimitCdr2, PlCdr2), then restores the enclosing
// kind and align origin recorded in outer.
func (c *Codec) EndSerializeType(outer State) error {
	switch c.effectiveFlag(c.activeKind) {
	case PlCdr1:
		if err := c.writeSentinel(); err != nil {
			return err
		}
	case DelimitCdr2, PlCdr2:
		length := c.buf.Current() - (outer.dheaderAt + 4)
		if err := c.patchRaw32(outer.dheaderAt, uint32(length)); err != nil {
			return err
		}
	}
	c.buf.SetAlignOrigin(outer.AlignOrigin)
	c.activeKind = outer.Kind
	return nil
}

// SerializeMember emits one member of the composite-type block currently
// open on c. write serializes the member's value; for Final and
// DelimitCdr2 it is called directly with no header (the grammar carries
// no per-member framing), for the mutable kinds it is preceded by a
// ShortMemberHeader/LongMemberHeader (PlCdr1) or EMHEADER1 (PlCdr2) whose
// length field is computed by running write once against a
// SizeCalculator.
func (c *Codec) SerializeMember(id uint32, mustUnderstand bool, write func(*Codec) error) error {
	switch c.effectiveFlag(c.activeKind) {
	case PlainCdr1, PlainCdr2, DelimitCdr2:
		return write(c)
	case PlCdr1:
		return c.serializeMemberPlCdr1(id, mustUnderstand, write)
	case PlCdr2:
		return c.emitPlCdr2Member(id, mustUnderstand, false, write)
	}
	return wrapErr("serialize_member", c.buf.Current(), ErrBadParam)
}

// SerializeNestedMember emits a PlCdr2 member whose value is itself a
// typed block carrying its own DHEADER (a nested Appendable or Mutable
// value). It uses LC=5 so a reader that does not recognize id can skip
// the whole nested block, DHEADER included, by its NEXTINT length alone
// (spec §4.5.5). Outside PlCdr2 it behaves exactly like SerializeMember.
func (c *Codec) SerializeNestedMember(id uint32, mustUnderstand bool, write func(*Codec) error) error {
	if c.effectiveFlag(c.activeKind) != PlCdr2 {
		return c.SerializeMember(id, mustUnderstand, write)
	}
	return c.emitPlCdr2Member(id, mustUnderstand, true, write)
}

func (c *Codec) serializeMemberPlCdr1(id uint32, mustUnderstand bool, write func(*Codec) error) error {
	n, err := c.measure(write)
	if err != nil {
		return err
	}
	headerStart := c.buf.Current()
	if id < shortHeaderIDLimit && n < shortHeaderLengthLimit {
		err = c.writeShortMemberHeader(id, mustUnderstand, n)
	} else {
		err = c.writeLongMemberHeader(id, mustUnderstand, n)
	}
	if err != nil {
		return err
	}
	if err := write(c); err != nil {
		return err
	}
	return c.padMemberTo4(headerStart)
}

func (c *Codec) emitPlCdr2Member(id uint32, mustUnderstand, nested bool, write func(*Codec) error) error {
	n, err := c.measure(write)
	if err != nil {
		return err
	}
	lc, useNextInt := emheaderLC(n, nested)
	if err := c.writeEMHeader1(id, mustUnderstand, lc); err != nil {
		return err
	}
	if useNextInt {
		if err := c.writeRaw32(uint32(n)); err != nil {
			return err
		}
	}
	return write(c)
}

// emheaderLC picks the EMHEADER1 length code for a member whose payload
// serializes to n bytes. Nested typed blocks always use LC=5 regardless
// of size, since a reader must know to expect (and skip past) their own
// embedded DHEADER. Otherwise LC 0-3 cover the exact inline widths
// 1/2/4/8; anything else (including the 16-byte long double) falls back
// to LC=4 with an explicit NEXTINT.
func emheaderLC(n int, nested bool) (lc uint8, useNextInt bool) {
	if nested {
		return 5, true
	}
	switch n {
	case 1:
		return 0, false
	case 2:
		return 1, false
	case 4:
		return 2, false
	case 8:
		return 3, false
	default:
		return 4, true
	}
}

// MemberDispatcher consumes one member during DeserializeType. It
// returns true if it recognized and read the member named by mid, false
// if mid is unknown; the loop then skips the member by whatever length
// information its grammar provides (or, for PlainCdr, stops entirely —
// that grammar has no length to skip by).
type MemberDispatcher func(c *Codec, mid uint32) (bool, error)

// DeserializeType reads a composite-type block of the given kind,
// invoking dispatcher once per member in wire order. It is the
// decode-side mirror of BeginSerializeType/SerializeMember/EndSerializeType.
func (c *Codec) DeserializeType(kind ExtensibilityKind, dispatcher MemberDispatcher) error {
	prevKind := c.activeKind
	c.activeKind = kind
	defer func() { c.activeKind = prevKind }()

	switch c.effectiveFlag(kind) {
	case PlainCdr1, PlainCdr2:
		return c.deserializeFinal(dispatcher)
	case DelimitCdr2:
		return c.deserializeDelimitCdr2(dispatcher)
	case PlCdr1:
		return c.deserializePlCdr1(dispatcher)
	case PlCdr2:
		return c.deserializePlCdr2(dispatcher)
	}
	return wrapErr("deserialize_type", c.buf.Current(), ErrBadParam)
}

// deserializeFinal has no framing at all: it calls dispatcher with
// mid = 0, 1, 2, … until it returns false, which is this grammar's only
// terminator (spec §4.5.7).
func (c *Codec) deserializeFinal(dispatcher MemberDispatcher) error {
	for mid := uint32(0); ; mid++ {
		ok, err := dispatcher(c, mid)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func (c *Codec) deserializeDelimitCdr2(dispatcher MemberDispatcher) error {
	if err := c.alignRead(4); err != nil {
		return err
	}
	dheader, err := c.readRaw32()
	if err != nil {
		return err
	}
	prevOrigin := c.buf.AlignOrigin()
	c.buf.SetAlignOrigin(c.buf.Current())
	limit := c.buf.Current() + int(dheader)
	defer c.buf.SetAlignOrigin(prevOrigin)

	for mid := uint32(0); c.buf.Current() < limit; mid++ {
		ok, err := dispatcher(c, mid)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if c.buf.Current() < limit {
		return c.buf.JumpTo(limit)
	}
	return nil
}

func (c *Codec) deserializePlCdr1(dispatcher MemberDispatcher) error {
	for {
		headerStart := c.buf.Current()
		tagWord, err := c.readRaw16()
		if err != nil {
			return err
		}
		mustUnderstand := tagWord&PIDFlagMustUnderstand != 0
		_ = mustUnderstand
		rawID := uint32(tagWord &^ (PIDFlagMustUnderstand | PIDFlagImplementation))

		switch rawID {
		case PIDSentinel:
			_, err := c.readRaw16() // trailing reserved length, always 0
			return err
		case PIDExtended:
			if _, err := c.readRaw16(); err != nil { // placeholder, always 8
				return err
			}
			id, err := c.readRaw32()
			if err != nil {
				return err
			}
			length, err := c.readRaw32()
			if err != nil {
				return err
			}
			if err := c.dispatchPlCdr1Member(dispatcher, id, int(length), headerStart); err != nil {
				return err
			}
		default:
			length, err := c.readRaw16()
			if err != nil {
				return err
			}
			if err := c.dispatchPlCdr1Member(dispatcher, rawID, int(length), headerStart); err != nil {
				return err
			}
		}
	}
}

func (c *Codec) dispatchPlCdr1Member(dispatcher MemberDispatcher, id uint32, length, headerStart int) error {
	payloadStart := c.buf.Current()
	ok, err := dispatcher(c, id)
	if err != nil {
		return err
	}
	if !ok {
		if err := c.buf.JumpTo(payloadStart + length); err != nil {
			return err
		}
	}
	return c.skipMemberPadTo4(headerStart)
}

func (c *Codec) deserializePlCdr2(dispatcher MemberDispatcher) error {
	if err := c.alignRead(4); err != nil {
		return err
	}
	dheader, err := c.readRaw32()
	if err != nil {
		return err
	}
	prevOrigin := c.buf.AlignOrigin()
	c.buf.SetAlignOrigin(c.buf.Current())
	limit := c.buf.Current() + int(dheader)
	defer c.buf.SetAlignOrigin(prevOrigin)

	for c.buf.Current() < limit {
		id, _, lc, err := c.readEMHeader1()
		if err != nil {
			return err
		}
		length, err := c.lcLength(lc)
		if err != nil {
			return err
		}
		payloadStart := c.buf.Current()
		ok, err := dispatcher(c, id)
		if err != nil {
			return err
		}
		if !ok {
			if err := c.buf.JumpTo(payloadStart + length); err != nil {
				return err
			}
		}
	}
	if c.buf.Current() < limit {
		return c.buf.JumpTo(limit)
	}
	return nil
}

// lcLength resolves an EMHEADER1 length code to a byte count, reading the
// NEXTINT word when lc requires one (4 or 5).
func (c *Codec) lcLength(lc uint8) (int, error) {
	switch lc {
	case 0:
		return 1, nil
	case 1:
		return 2, nil
	case 2:
		return 4, nil
	case 3:
		return 8, nil
	case 4, 5:
		n, err := c.readRaw32()
		return int(n), err
	default:
		return 0, wrapErr("deserialize_type", c.buf.Current(), ErrBadParam)
	}
}
