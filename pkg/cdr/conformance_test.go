package cdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This file exercises the byte-exact wire vectors and worked scenarios
// used to validate this codec against the reference OMG CDR/XCDR wire
// formats: a change that breaks any of these has broken interop with a
// real DDS peer, not just an internal invariant.

// ============================================================================
// Scenario 1: Classic/XCDRv1 mutable, little-endian, uint16 member
// followed by an absent optional<uint32>, then sentinel.
// ============================================================================

func TestConformanceScenario1_MutablePlCdr1WithAbsentOptional(t *testing.T) {
	buf := NewBuffer(make([]byte, 32))
	c := NewCodec(buf, LittleEndian, XCDRv1)

	require.NoError(t, c.SerializeEncapsulation(c.EncodingFlagFor(Mutable)))
	outer, err := c.BeginSerializeType(Mutable)
	require.NoError(t, err)
	require.NoError(t, c.SerializeMember(1, false, func(c *Codec) error { return c.WriteUint16(0xCDDC) }))
	require.NoError(t, c.SerializeOptional(2, false, false, func(c *Codec) error { return c.WriteUint32(0) }))
	require.NoError(t, c.EndSerializeType(outer))

	expected := []byte{
		0x00, 0x03, 0x00, 0x00, // encapsulation: reserved, PlCdr1|LE, 2 reserved options
		0x01, 0x00, 0x02, 0x00, // ShortMemberHeader: id=1, length=2
		0xDC, 0xCD, 0x00, 0x00, // payload 0xCDDC, padded to 4 bytes from header start
		0x02, 0x3F, 0x00, 0x00, // sentinel: PID_SENTINEL, reserved length
	}
	assert.Equal(t, expected, buf.Bytes())
}

// ============================================================================
// Scenario 2: XCDRv2 appendable, big-endian: {uint32, uint16, uint8}.
// ============================================================================

func TestConformanceScenario2_AppendableDelimitCdr2(t *testing.T) {
	buf := NewBuffer(make([]byte, 32))
	c := NewCodec(buf, BigEndian, XCDRv2)

	require.NoError(t, c.SerializeEncapsulation(c.EncodingFlagFor(Appendable)))
	outer, err := c.BeginSerializeType(Appendable)
	require.NoError(t, err)
	require.NoError(t, c.SerializeMember(0, false, func(c *Codec) error { return c.WriteUint32(0xCD) }))
	require.NoError(t, c.SerializeMember(1, false, func(c *Codec) error { return c.WriteUint16(0xCD) }))
	require.NoError(t, c.SerializeMember(2, false, func(c *Codec) error { return c.WriteUint8(0xCD) }))
	require.NoError(t, c.EndSerializeType(outer))

	expected := []byte{
		0x00, 0x08, 0x00, 0x00, // encapsulation: reserved, DelimitCdr2|BE, reserved options
		0x00, 0x00, 0x00, 0x07, // DHEADER = 7 bytes of payload
		0x00, 0x00, 0x00, 0xCD, // uint32
		0x00, 0xCD, // uint16
		0xCD, // uint8
	}
	assert.Equal(t, expected, buf.Bytes())
}

// ============================================================================
// Scenario 3: nested appendable inside mutable, XCDRv2 little-endian.
// ============================================================================

func TestConformanceScenario3_NestedAppendableInsideMutable(t *testing.T) {
	buf := NewBuffer(make([]byte, 128))
	c := NewCodec(buf, LittleEndian, XCDRv2)

	writeInner := func(c *Codec) error {
		inner, err := c.BeginSerializeType(Appendable)
		if err != nil {
			return err
		}
		if err := c.SerializeMember(0, false, func(c *Codec) error { return c.WriteUint32(0xCD) }); err != nil {
			return err
		}
		if err := c.SerializeMember(1, false, func(c *Codec) error { return c.WriteUint16(0xCD) }); err != nil {
			return err
		}
		if err := c.SerializeMember(2, false, func(c *Codec) error { return c.WriteUint8(0xCD) }); err != nil {
			return err
		}
		return c.EndSerializeType(inner)
	}

	require.NoError(t, c.SerializeEncapsulation(c.EncodingFlagFor(Mutable)))
	outer, err := c.BeginSerializeType(Mutable)
	require.NoError(t, err)
	require.NoError(t, c.SerializeNestedMember(0, false, writeInner))
	require.NoError(t, c.SerializeNestedMember(1, false, writeInner))
	require.NoError(t, c.EndSerializeType(outer))

	wire := buf.Bytes()
	assert.Equal(t, []byte{0x00, 0x0B, 0x00, 0x00}, wire[0:4], "encapsulation: PlCdr2|LE")

	buf.current = 0
	_, err = c.DeserializeEncapsulation()
	require.NoError(t, err)

	var innerIDs []uint32
	err = c.DeserializeType(Mutable, func(c *Codec, mid uint32) (bool, error) {
		if mid > 1 {
			return false, nil
		}
		innerIDs = append(innerIDs, mid)
		return true, c.DeserializeType(Appendable, func(c *Codec, innerMid uint32) (bool, error) {
			switch innerMid {
			case 0:
				v, err := c.ReadUint32()
				assert.Equal(t, uint32(0xCD), v)
				return true, err
			case 1:
				v, err := c.ReadUint16()
				assert.Equal(t, uint16(0xCD), v)
				return true, err
			case 2:
				v, err := c.ReadUint8()
				assert.Equal(t, uint8(0xCD), v)
				return true, err
			default:
				return false, nil
			}
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, innerIDs)
}

// ============================================================================
// Scenario 4: narrow string "Hola", XCDRv1 big-endian; embedded NUL rejected.
// ============================================================================

func TestConformanceScenario4_NarrowString(t *testing.T) {
	t.Run("EncodesHola", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 16))
		c := NewCodec(buf, BigEndian, XCDRv1)
		require.NoError(t, c.WriteString("Hola"))

		expected := []byte{
			0x00, 0x00, 0x00, 0x05,
			'H', 'o', 'l', 'a', 0x00,
		}
		assert.Equal(t, expected, buf.Bytes())
	})

	t.Run("RejectsEmbeddedNUL", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 16))
		c := NewCodec(buf, BigEndian, XCDRv1)
		err := c.WriteString("Hel\x00o")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadParam)
	})
}

// ============================================================================
// Scenario 5: wide string L"HOLA", XCDRv1 little-endian.
// ============================================================================

func TestConformanceScenario5_WideString(t *testing.T) {
	buf := NewBuffer(make([]byte, 16))
	c := NewCodec(buf, LittleEndian, XCDRv1)
	require.NoError(t, c.WriteWideString("HOLA"))

	expected := []byte{
		0x04, 0x00, 0x00, 0x00,
		'H', 0x00, 'O', 0x00, 'L', 0x00, 'A', 0x00,
	}
	assert.Equal(t, expected, buf.Bytes())
}

// ============================================================================
// Scenario 6: bad encapsulation first byte.
// ============================================================================

func TestConformanceScenario6_BadEncapsulationFirstByte(t *testing.T) {
	for _, b := range []byte{0x01, 0x7F, 0xFF} {
		buf := NewBuffer([]byte{b, 0x00, 0x00, 0x00})
		c := NewCodec(buf, BigEndian, CorbaCdr)
		_, err := c.DeserializeEncapsulation()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadParam)
	}
}

// ============================================================================
// Boundary behaviors (spec §8.3)
// ============================================================================

func TestConformanceBoundaryBehaviors(t *testing.T) {
	t.Run("BufferOneByteShortOfWidthFailsOnEncode", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 3))
		c := NewCodec(buf, BigEndian, CorbaCdr)
		err := c.WriteUint32(1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotEnoughMemory)
	})

	t.Run("BufferOneByteShortOfWidthFailsOnDecode", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 3))
		c := NewCodec(buf, BigEndian, CorbaCdr)
		_, err := c.ReadUint32()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotEnoughMemory)
	})

	t.Run("MaxUint32SequenceLengthFailsWithoutAllocating", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 4))
		c := NewCodec(buf, BigEndian, CorbaCdr)
		require.NoError(t, c.WriteUint32(0xFFFFFFFF))
		buf.current = 0
		_, err := DeserializeSequence(c, func(c *Codec) (byte, error) { return c.ReadUint8() })
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotEnoughMemory)
	})

	t.Run("TrailingOptionalAtEndOfBufferRoundTrips", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 8))
		c := NewCodec(buf, BigEndian, XCDRv2)
		outer, err := c.BeginSerializeType(Final)
		require.NoError(t, err)
		require.NoError(t, c.SerializeOptional(0, false, true, func(c *Codec) error { return c.WriteUint8(1) }))
		require.NoError(t, c.EndSerializeType(outer))

		buf.current = 0
		present, err := c.DeserializeOptional(func(c *Codec) error {
			v, err := c.ReadUint8()
			assert.Equal(t, uint8(1), v)
			return err
		})
		require.NoError(t, err)
		assert.True(t, present)
	})
}
