package cdr

// Optional members (spec §4.5.6). The wire shape of an @optional field
// depends entirely on the active composite's grammar: Final, PlainCdr2
// and DelimitCdr2 carry an explicit presence byte; PlCdr1 and PlCdr2
// instead just omit absent members from the stream altogether, so their
// presence is implied by whether the member ever shows up during
// DeserializeType.

// SerializeOptional emits one optional member. present selects whether
// write runs at all; under PlainCdr/PlainCdr2/DelimitCdr2 a 1-byte
// presence flag is always written first, under PlCdr1/PlCdr2 an absent
// value is simply skipped.
func (c *Codec) SerializeOptional(id uint32, mustUnderstand, present bool, write func(*Codec) error) error {
	switch c.effectiveFlag(c.activeKind) {
	case PlainCdr1, PlainCdr2, DelimitCdr2:
		if err := c.WriteBool(present); err != nil {
			return err
		}
		if !present {
			return nil
		}
		return c.SerializeMember(id, mustUnderstand, write)
	default: // PlCdr1, PlCdr2
		if !present {
			return nil
		}
		return c.SerializeMember(id, mustUnderstand, write)
	}
}

// DeserializeOptional reads one optional member under a presence-byte
// grammar (PlainCdr/PlainCdr2/DelimitCdr2), returning present=false and
// skipping read entirely when the stored flag is 0. Under PlCdr1/PlCdr2
// there is no presence byte to read: callers learn presence from whether
// their MemberDispatcher was invoked for that member id at all, and call
// read directly from inside it — this function then only runs read.
func (c *Codec) DeserializeOptional(read func(*Codec) error) (present bool, err error) {
	switch c.effectiveFlag(c.activeKind) {
	case PlainCdr1, PlainCdr2, DelimitCdr2:
		present, err = c.ReadBool()
		if err != nil || !present {
			return present, err
		}
		return true, read(c)
	default:
		return true, read(c)
	}
}
