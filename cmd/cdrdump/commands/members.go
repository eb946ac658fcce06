package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/marmos91/gocdr/pkg/cdr"
)

// memberSpec is one entry of the JSON array "cdrdump encode" accepts on
// its command line: a member id, its scalar/string/bytes type, and a
// JSON-encoded value to serialize.
type memberSpec struct {
	ID             uint32          `json:"id"`
	MustUnderstand bool            `json:"must_understand,omitempty"`
	Type           string          `json:"type"`
	Value          json.RawMessage `json:"value"`
}

// parseMemberSpecs decodes the JSON member array passed to "cdrdump encode".
func parseMemberSpecs(raw string) ([]memberSpec, error) {
	var specs []memberSpec
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, fmt.Errorf("invalid member JSON: %w", err)
	}
	return specs, nil
}

// writeMember serializes one memberSpec's value as the given type.
func writeMember(c *cdr.Codec, spec memberSpec) error {
	switch spec.Type {
	case "bool":
		var v bool
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteBool(v)
	case "int8":
		var v int8
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteInt8(v)
	case "uint8":
		var v uint8
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteUint8(v)
	case "int16":
		var v int16
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteInt16(v)
	case "uint16":
		var v uint16
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteUint16(v)
	case "int32":
		var v int32
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteInt32(v)
	case "uint32":
		var v uint32
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteUint32(v)
	case "int64":
		var v int64
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteInt64(v)
	case "uint64":
		var v uint64
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteUint64(v)
	case "float32":
		var v float32
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteFloat32(v)
	case "float64":
		var v float64
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteFloat64(v)
	case "string":
		var v string
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteString(v)
	case "wstring":
		var v string
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		return c.WriteWideString(v)
	case "bytes":
		var v string
		if err := json.Unmarshal(spec.Value, &v); err != nil {
			return err
		}
		data, err := hex.DecodeString(v)
		if err != nil {
			return fmt.Errorf("member %d: bytes value is not valid hex: %w", spec.ID, err)
		}
		return c.WriteOpaque(data)
	default:
		return fmt.Errorf("member %d: unsupported type %q", spec.ID, spec.Type)
	}
}

// parseExtensibilityKind maps a --kind flag value to an ExtensibilityKind.
func parseExtensibilityKind(s string) (cdr.ExtensibilityKind, error) {
	switch s {
	case "final":
		return cdr.Final, nil
	case "appendable":
		return cdr.Appendable, nil
	case "mutable":
		return cdr.Mutable, nil
	default:
		return cdr.Final, fmt.Errorf("unknown kind %q (want final, appendable, or mutable)", s)
	}
}

// parseCdrVersion maps a --version flag value to a CdrVersion.
func parseCdrVersion(s string) (cdr.CdrVersion, error) {
	switch s {
	case "corba", "classic":
		return cdr.CorbaCdr, nil
	case "xcdr1":
		return cdr.XCDRv1, nil
	case "xcdr2":
		return cdr.XCDRv2, nil
	default:
		return cdr.XCDRv2, fmt.Errorf("unknown version %q (want corba, xcdr1, or xcdr2)", s)
	}
}

// parseEndianness maps a --endian flag value to an Endianness.
func parseEndianness(s string) (cdr.Endianness, error) {
	switch s {
	case "be", "big":
		return cdr.BigEndian, nil
	case "le", "little":
		return cdr.LittleEndian, nil
	case "", "default-host", "host":
		return cdr.HostEndianness(), nil
	default:
		return cdr.BigEndian, fmt.Errorf("unknown endianness %q (want be, le, or default-host)", s)
	}
}

// kindForFlag maps an EncodingAlgorithmFlag read off the wire back to the
// ExtensibilityKind that produces it, so "decode"/"inspect" can recover
// the root type's shape from the encapsulation header alone instead of
// requiring a --kind flag.
func kindForFlag(flag cdr.EncodingAlgorithmFlag) cdr.ExtensibilityKind {
	switch flag {
	case cdr.DelimitCdr2:
		return cdr.Appendable
	case cdr.PlCdr1, cdr.PlCdr2:
		return cdr.Mutable
	default:
		return cdr.Final
	}
}

// guessVersionFromEncapsulation inspects the raw encoding-id byte (offset
// 1) of a frame without committing to a CdrVersion first, so "decode"/
// "inspect" can run without a --version flag. The id byte alone
// disambiguates XCDRv2 (PlainCdr2/DelimitCdr2/PlCdr2, values 6/8/10) from
// classic/XCDRv1 (PlainCdr1/PlCdr1, values 0/2); it cannot tell classic
// CDR apart from XCDRv1, since both use identical framing, so this
// guesses XCDRv1 for that group. Pass --version explicitly to decode a
// classic-CDR frame.
func guessVersionFromEncapsulation(data []byte) cdr.CdrVersion {
	if len(data) < 2 {
		return cdr.XCDRv2
	}
	switch cdr.EncodingAlgorithmFlag(data[1] &^ 0x01) {
	case cdr.PlainCdr1, cdr.PlCdr1:
		return cdr.XCDRv1
	default:
		return cdr.XCDRv2
	}
}

// headerKindLabel renders a MemberFrame's header flavor for display.
func headerKindLabel(h string) string {
	switch h {
	case "none":
		return "none (opaque block)"
	case "short":
		return "ShortMemberHeader"
	case "long":
		return "LongMemberHeader"
	case "em1":
		return "EMHEADER1"
	default:
		return h
	}
}
