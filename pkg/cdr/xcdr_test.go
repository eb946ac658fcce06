package cdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// effectiveFlag / EncodingFlagFor Tests
// ============================================================================

func TestEffectiveFlag(t *testing.T) {
	tests := []struct {
		name    string
		version CdrVersion
		kind    ExtensibilityKind
		want    EncodingAlgorithmFlag
	}{
		{"CorbaFinal", CorbaCdr, Final, PlainCdr1},
		{"CorbaAppendableDegradesToPlainCdr1", CorbaCdr, Appendable, PlainCdr1},
		{"CorbaMutable", CorbaCdr, Mutable, PlCdr1},
		{"XCDRv1Final", XCDRv1, Final, PlainCdr1},
		{"XCDRv1AppendableDegradesToPlainCdr1", XCDRv1, Appendable, PlainCdr1},
		{"XCDRv1Mutable", XCDRv1, Mutable, PlCdr1},
		{"XCDRv2Final", XCDRv2, Final, PlainCdr2},
		{"XCDRv2Appendable", XCDRv2, Appendable, DelimitCdr2},
		{"XCDRv2Mutable", XCDRv2, Mutable, PlCdr2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewDiscardBuffer()
			c := NewCodec(buf, BigEndian, tt.version)
			assert.Equal(t, tt.want, c.EncodingFlagFor(tt.kind))
		})
	}
}

// ============================================================================
// Final Block Round-Trip
// ============================================================================

func TestFinalBlockRoundTrip(t *testing.T) {
	buf := NewBuffer(make([]byte, 64))
	c := NewCodec(buf, BigEndian, CorbaCdr)

	outer, err := c.BeginSerializeType(Final)
	require.NoError(t, err)
	require.NoError(t, c.SerializeMember(0, false, func(c *Codec) error { return c.WriteUint32(7) }))
	require.NoError(t, c.SerializeMember(1, false, func(c *Codec) error { return c.WriteUint32(9) }))
	require.NoError(t, c.EndSerializeType(outer))

	buf.current = 0
	var got []uint32
	err = c.DeserializeType(Final, func(c *Codec, mid uint32) (bool, error) {
		if mid >= 2 {
			return false, nil
		}
		v, err := c.ReadUint32()
		if err != nil {
			return false, err
		}
		got = append(got, v)
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{7, 9}, got)
}

// ============================================================================
// Appendable Block Round-Trip (XCDRv2, DelimitCdr2)
// ============================================================================

func TestAppendableBlockRoundTrip(t *testing.T) {
	buf := NewBuffer(make([]byte, 64))
	c := NewCodec(buf, BigEndian, XCDRv2)

	outer, err := c.BeginSerializeType(Appendable)
	require.NoError(t, err)
	require.NoError(t, c.SerializeMember(0, false, func(c *Codec) error { return c.WriteUint32(1) }))
	require.NoError(t, c.SerializeMember(1, false, func(c *Codec) error { return c.WriteUint32(2) }))
	require.NoError(t, c.EndSerializeType(outer))

	t.Run("UnknownReaderSkipsTrailingMembersViaDHEADER", func(t *testing.T) {
		buf2 := NewBuffer(make([]byte, 64))
		c2 := NewCodec(buf2, BigEndian, XCDRv2)
		outer2, err := c2.BeginSerializeType(Appendable)
		require.NoError(t, err)
		require.NoError(t, c2.SerializeMember(0, false, func(c *Codec) error { return c.WriteUint32(1) }))
		require.NoError(t, c2.SerializeMember(1, false, func(c *Codec) error { return c.WriteUint32(2) }))
		require.NoError(t, c2.EndSerializeType(outer2))

		buf2.current = 0
		var seen int
		err = c2.DeserializeType(Appendable, func(c *Codec, mid uint32) (bool, error) {
			if mid >= 1 { // only recognizes member 0
				return false, nil
			}
			_, err := c.ReadUint32()
			seen++
			return true, err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, seen)
	})

	buf.current = 0
	var got []uint32
	err = c.DeserializeType(Appendable, func(c *Codec, mid uint32) (bool, error) {
		v, err := c.ReadUint32()
		if err != nil {
			return false, err
		}
		got = append(got, v)
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, got)
}

// ============================================================================
// Mutable Block Round-Trip — PlCdr1 (XCDRv1)
// ============================================================================

func TestMutableBlockRoundTripPlCdr1(t *testing.T) {
	buf := NewBuffer(make([]byte, 128))
	c := NewCodec(buf, BigEndian, XCDRv1)

	outer, err := c.BeginSerializeType(Mutable)
	require.NoError(t, err)
	require.NoError(t, c.SerializeMember(1, false, func(c *Codec) error { return c.WriteUint32(111) }))
	require.NoError(t, c.SerializeMember(2, true, func(c *Codec) error { return c.WriteString("xcdr1") }))
	require.NoError(t, c.EndSerializeType(outer))

	buf.current = 0
	got := map[uint32]any{}
	err = c.DeserializeType(Mutable, func(c *Codec, mid uint32) (bool, error) {
		switch mid {
		case 1:
			v, err := c.ReadUint32()
			got[mid] = v
			return true, err
		case 2:
			v, err := c.ReadString()
			got[mid] = v
			return true, err
		default:
			return false, nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(111), got[1])
	assert.Equal(t, "xcdr1", got[2])
}

func TestMutableBlockUnknownMemberSkippedPlCdr1(t *testing.T) {
	buf := NewBuffer(make([]byte, 128))
	c := NewCodec(buf, BigEndian, XCDRv1)

	outer, err := c.BeginSerializeType(Mutable)
	require.NoError(t, err)
	require.NoError(t, c.SerializeMember(1, false, func(c *Codec) error { return c.WriteUint32(1) }))
	require.NoError(t, c.SerializeMember(2, false, func(c *Codec) error { return c.WriteString("skip-me") }))
	require.NoError(t, c.SerializeMember(3, false, func(c *Codec) error { return c.WriteUint32(3) }))
	require.NoError(t, c.EndSerializeType(outer))

	buf.current = 0
	var seen []uint32
	err = c.DeserializeType(Mutable, func(c *Codec, mid uint32) (bool, error) {
		if mid == 2 {
			return false, nil // skipped by the member header's length, not read
		}
		v, err := c.ReadUint32()
		if err != nil {
			return false, err
		}
		seen = append(seen, v)
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3}, seen)
}

// ============================================================================
// Mutable Block Round-Trip — PlCdr2 (XCDRv2)
// ============================================================================

func TestMutableBlockRoundTripPlCdr2(t *testing.T) {
	buf := NewBuffer(make([]byte, 128))
	c := NewCodec(buf, LittleEndian, XCDRv2)

	outer, err := c.BeginSerializeType(Mutable)
	require.NoError(t, err)
	require.NoError(t, c.SerializeMember(10, false, func(c *Codec) error { return c.WriteUint8(9) }))
	require.NoError(t, c.SerializeMember(11, false, func(c *Codec) error { return c.WriteUint64(0xFEED) }))
	require.NoError(t, c.SerializeMember(12, false, func(c *Codec) error { return c.WriteString("pl2") }))
	require.NoError(t, c.EndSerializeType(outer))

	buf.current = 0
	got := map[uint32]any{}
	err = c.DeserializeType(Mutable, func(c *Codec, mid uint32) (bool, error) {
		switch mid {
		case 10:
			v, err := c.ReadUint8()
			got[mid] = v
			return true, err
		case 11:
			v, err := c.ReadUint64()
			got[mid] = v
			return true, err
		case 12:
			v, err := c.ReadString()
			got[mid] = v
			return true, err
		default:
			return false, nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, uint8(9), got[10])
	assert.Equal(t, uint64(0xFEED), got[11])
	assert.Equal(t, "pl2", got[12])
}

func TestMutableBlockUnknownMemberSkippedPlCdr2(t *testing.T) {
	buf := NewBuffer(make([]byte, 128))
	c := NewCodec(buf, BigEndian, XCDRv2)

	outer, err := c.BeginSerializeType(Mutable)
	require.NoError(t, err)
	require.NoError(t, c.SerializeMember(1, false, func(c *Codec) error { return c.WriteUint32(1) }))
	require.NoError(t, c.SerializeMember(2, false, func(c *Codec) error { return c.WriteString("skip-me-too") }))
	require.NoError(t, c.SerializeMember(3, false, func(c *Codec) error { return c.WriteUint32(3) }))
	require.NoError(t, c.EndSerializeType(outer))

	buf.current = 0
	var seen []uint32
	err = c.DeserializeType(Mutable, func(c *Codec, mid uint32) (bool, error) {
		if mid == 2 {
			return false, nil
		}
		v, err := c.ReadUint32()
		if err != nil {
			return false, err
		}
		seen = append(seen, v)
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3}, seen)
}

// ============================================================================
// SerializeNestedMember Tests
// ============================================================================

func TestSerializeNestedMember(t *testing.T) {
	t.Run("UsesLC5WithExplicitNextIntUnderPlCdr2", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 128))
		c := NewCodec(buf, BigEndian, XCDRv2)

		outer, err := c.BeginSerializeType(Mutable)
		require.NoError(t, err)
		require.NoError(t, c.SerializeNestedMember(1, false, func(c *Codec) error {
			inner, err := c.BeginSerializeType(Appendable)
			if err != nil {
				return err
			}
			if err := c.SerializeMember(0, false, func(c *Codec) error { return c.WriteUint32(42) }); err != nil {
				return err
			}
			return c.EndSerializeType(inner)
		}))
		require.NoError(t, c.EndSerializeType(outer))
		// EMHEADER1 after the outer DHEADER: LC=5, id 1; then NEXTINT = 8
		// (the nested block's own DHEADER plus its uint32).
		assert.Equal(t, []byte{0x50, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x08}, buf.Bytes()[4:12])

		buf.current = 0
		var inner uint32
		err = c.DeserializeType(Mutable, func(c *Codec, mid uint32) (bool, error) {
			if mid != 1 {
				return false, nil
			}
			return true, c.DeserializeType(Appendable, func(c *Codec, mid uint32) (bool, error) {
				if mid != 0 {
					return false, nil
				}
				v, err := c.ReadUint32()
				inner = v
				return true, err
			})
		})
		require.NoError(t, err)
		assert.Equal(t, uint32(42), inner)
	})

	t.Run("BehavesLikeSerializeMemberOutsidePlCdr2", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 64))
		c := NewCodec(buf, BigEndian, CorbaCdr)
		outer, err := c.BeginSerializeType(Final)
		require.NoError(t, err)
		require.NoError(t, c.SerializeNestedMember(0, false, func(c *Codec) error { return c.WriteUint32(5) }))
		require.NoError(t, c.EndSerializeType(outer))
		assert.Equal(t, 4, buf.Len())
	})
}

// ============================================================================
// Optional Member Tests
// ============================================================================

func TestOptionalMemberFinalUsesPresenceByte(t *testing.T) {
	buf := NewBuffer(make([]byte, 64))
	c := NewCodec(buf, BigEndian, XCDRv2)

	outer, err := c.BeginSerializeType(Final)
	require.NoError(t, err)
	require.NoError(t, c.SerializeOptional(0, false, false, func(c *Codec) error { return c.WriteUint32(1) }))
	require.NoError(t, c.SerializeOptional(1, false, true, func(c *Codec) error { return c.WriteUint32(2) }))
	require.NoError(t, c.EndSerializeType(outer))

	buf.current = 0
	present1, err := c.DeserializeOptional(func(c *Codec) error { _, err := c.ReadUint32(); return err })
	require.NoError(t, err)
	assert.False(t, present1)

	present2, err := c.DeserializeOptional(func(c *Codec) error {
		v, err := c.ReadUint32()
		assert.Equal(t, uint32(2), v)
		return err
	})
	require.NoError(t, err)
	assert.True(t, present2)
}

func TestOptionalMemberMutableOmitsAbsentEntirely(t *testing.T) {
	buf := NewBuffer(make([]byte, 64))
	c := NewCodec(buf, BigEndian, XCDRv2)

	outer, err := c.BeginSerializeType(Mutable)
	require.NoError(t, err)
	require.NoError(t, c.SerializeOptional(0, false, false, func(c *Codec) error { return c.WriteUint32(1) }))
	require.NoError(t, c.SerializeOptional(1, false, true, func(c *Codec) error { return c.WriteUint32(2) }))
	require.NoError(t, c.EndSerializeType(outer))

	buf.current = 0
	var seenIDs []uint32
	err = c.DeserializeType(Mutable, func(c *Codec, mid uint32) (bool, error) {
		seenIDs = append(seenIDs, mid)
		_, err := c.DeserializeOptional(func(c *Codec) error { _, err := c.ReadUint32(); return err })
		return true, err
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, seenIDs, "member 0 was never written since it was absent")
}

// ============================================================================
// GetState / SetState Tests
// ============================================================================

func TestGetSetState(t *testing.T) {
	buf := NewBuffer(make([]byte, 32))
	c := NewCodec(buf, BigEndian, CorbaCdr)
	require.NoError(t, c.WriteUint32(1))

	state := c.GetState()
	require.NoError(t, c.WriteUint32(2))
	assert.Equal(t, 8, buf.Len())

	c.SetState(state)
	assert.Equal(t, 4, buf.Len())
}
