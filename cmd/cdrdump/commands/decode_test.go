package commands

import (
	"encoding/hex"
	"testing"

	"github.com/marmos91/gocdr/pkg/cdr"
)

// buildMutableFrame hand-encodes a small XCDRv2 mutable frame the same
// way runEncode does, so decodeFrames can be exercised without going
// through cobra's flag parsing.
func buildMutableFrame(t *testing.T) string {
	t.Helper()

	buf := cdr.NewGrowableBuffer(256, 0)
	defer buf.Release()

	codec := cdr.NewCodec(buf, cdr.LittleEndian, cdr.XCDRv2)
	if err := codec.SerializeEncapsulation(codec.EncodingFlagFor(cdr.Mutable)); err != nil {
		t.Fatalf("SerializeEncapsulation() error = %v", err)
	}
	outer, err := codec.BeginSerializeType(cdr.Mutable)
	if err != nil {
		t.Fatalf("BeginSerializeType() error = %v", err)
	}
	if err := codec.SerializeMember(1, false, func(c *cdr.Codec) error {
		return c.WriteUint32(42)
	}); err != nil {
		t.Fatalf("SerializeMember(1) error = %v", err)
	}
	if err := codec.SerializeMember(2, false, func(c *cdr.Codec) error {
		return c.WriteString("hi")
	}); err != nil {
		t.Fatalf("SerializeMember(2) error = %v", err)
	}
	if err := codec.EndSerializeType(outer); err != nil {
		t.Fatalf("EndSerializeType() error = %v", err)
	}

	return hex.EncodeToString(buf.Bytes())
}

func TestDecodeFrames_Mutable(t *testing.T) {
	decodeVersion = "xcdr2"
	defer func() { decodeVersion = "" }()

	hexBytes := buildMutableFrame(t)

	_, frames, err := decodeFrames(hexBytes)
	if err != nil {
		t.Fatalf("decodeFrames() error = %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("decodeFrames() returned %d frames, want 2", len(frames))
	}
	if frames[0].ID != 1 || frames[0].Header != "em1" {
		t.Errorf("frames[0] = %+v", frames[0])
	}
	if frames[1].ID != 2 || frames[1].Header != "em1" {
		t.Errorf("frames[1] = %+v", frames[1])
	}
}

func TestDecodeFrames_BadHex(t *testing.T) {
	if _, _, err := decodeFrames("not hex"); err == nil {
		t.Error("decodeFrames() expected an error for invalid hex input")
	}
}

func TestDecodeFrames_AutoDetectsVersionFromHeader(t *testing.T) {
	decodeVersion = ""

	hexBytes := buildMutableFrame(t)

	_, frames, err := decodeFrames(hexBytes)
	if err != nil {
		t.Fatalf("decodeFrames() error = %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("decodeFrames() returned %d frames, want 2", len(frames))
	}
}
