package cdr

import (
	"strings"
	"unicode/utf16"
	"unsafe"
)

// String & container I/O (spec §4.3), built on the scalar layer.

// WriteString encodes a narrow string: a 4-byte length (payload plus
// trailing NUL), followed by the payload bytes and the NUL. Embedded NULs
// inside the payload are rejected with ErrBadParam; this check applies
// only to serialization, never to deserialization (spec §4.3).
func (c *Codec) WriteString(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return wrapErr("write string", c.buf.Current(), ErrBadParam)
	}
	payload := append([]byte(s), 0)
	if err := c.WriteUint32(uint32(len(payload))); err != nil {
		return err
	}
	return c.buf.Write(payload)
}

// ReadString decodes a narrow string. It never rejects embedded NULs; a
// trailing NUL, if present, is stripped from the returned value.
func (c *Codec) ReadString() (string, error) {
	length, err := c.ReadUint32()
	if err != nil {
		return "", err
	}
	if err := c.checkBounded(length); err != nil {
		return "", err
	}
	data, err := c.buf.Read(int(length))
	if err != nil {
		return "", wrapErr("read string", c.buf.Current(), ErrNotEnoughMemory)
	}
	if length > 0 && data[length-1] == 0 {
		return string(data[:length-1]), nil
	}
	return string(data), nil
}

// WriteOpaque encodes variable-length opaque data: a 4-byte length
// followed by the raw bytes, with no NUL terminator and no padding.
func (c *Codec) WriteOpaque(data []byte) error {
	if err := c.WriteUint32(uint32(len(data))); err != nil {
		return err
	}
	return c.buf.Write(data)
}

// ReadOpaque decodes variable-length opaque data written by WriteOpaque.
func (c *Codec) ReadOpaque() ([]byte, error) {
	length, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := c.checkBounded(length); err != nil {
		return nil, err
	}
	data, err := c.buf.Read(int(length))
	if err != nil {
		return nil, wrapErr("read opaque", c.buf.Current(), ErrNotEnoughMemory)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// WriteWideString encodes a wide string: a 4-byte length in *characters*
// (not bytes), followed by that many 16-bit code units in the codec's
// endianness. Wide strings always use 16-bit wide characters on the
// wire regardless of the host's wchar_t width (spec §4.3).
func (c *Codec) WriteWideString(s string) error {
	units := utf16.Encode([]rune(s))
	if err := c.WriteUint32(uint32(len(units))); err != nil {
		return err
	}
	for _, u := range units {
		if err := c.writeWideChar(u); err != nil {
			return err
		}
	}
	return nil
}

// ReadWideString decodes a wide string written by WriteWideString.
func (c *Codec) ReadWideString() (string, error) {
	count, err := c.ReadUint32()
	if err != nil {
		return "", err
	}
	if err := c.checkBounded(count); err != nil {
		return "", err
	}
	units := make([]uint16, count)
	for i := range units {
		u, err := c.readWideChar()
		if err != nil {
			return "", err
		}
		units[i] = u
	}
	return string(utf16.Decode(units)), nil
}

// writeWideChar/readWideChar write a single 16-bit wide character with no
// extra alignment beyond the 2-byte width itself; wide string characters
// pack tightly after the length field.
func (c *Codec) writeWideChar(u uint16) error { return c.writeRaw16(u) }
func (c *Codec) readWideChar() (uint16, error) { return c.readRaw16() }

// checkBounded fails fast with ErrNotEnoughMemory when a length prefix
// exceeds the bytes remaining in the buffer, defending against malformed
// 0xFFFFFFFF-style length fields without allocating proportional to them
// (spec §4.3, §8.3).
func (c *Codec) checkBounded(count uint32) error {
	remaining := c.buf.End() - c.buf.Current()
	if remaining < 0 {
		remaining = 0
	}
	if uint64(count) > uint64(remaining) {
		return wrapErr("bounds check", c.buf.Current(), ErrNotEnoughMemory)
	}
	return nil
}

// bulkWidth reports the wire width of T when it is a fixed-width
// primitive whose in-memory layout matches its wire layout byte for
// byte, making a single memcopy equivalent to the per-element path.
// bool is excluded: Go does not guarantee false/true occupy 0/1 in
// memory, so bool always goes through writeElem/readElem.
func bulkWidth[T any]() (int, bool) {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return 1, true
	case uint16, int16:
		return 2, true
	case uint32, int32, float32:
		return 4, true
	case uint64, int64, float64:
		return 8, true
	default:
		return 0, false
	}
}

// tryBulkWrite writes elems with a single memcopy instead of len(elems)
// calls to writeElem, when host and wire endianness agree and T is one
// of bulkWidth's fixed-width primitives. It reports whether it handled
// the write; on false the caller falls back to writeElem per element.
func tryBulkWrite[T any](c *Codec, elems []T) (bool, error) {
	if len(elems) == 0 || c.endianness != hostEndianness {
		return false, nil
	}
	width, ok := bulkWidth[T]()
	if !ok {
		return false, nil
	}
	if err := c.align(c.alignWidth(width)); err != nil {
		return true, err
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&elems[0])), len(elems)*width)
	return true, c.buf.Write(raw)
}

// tryBulkRead is tryBulkWrite's inverse: it copies n*width raw bytes out
// of the buffer into a freshly allocated []T in one pass, rather than
// aliasing the buffer's backing array (which carries no alignment
// guarantee for T).
func tryBulkRead[T any](c *Codec, n int) ([]T, bool, error) {
	if n == 0 || c.endianness != hostEndianness {
		return nil, false, nil
	}
	width, ok := bulkWidth[T]()
	if !ok {
		return nil, false, nil
	}
	if err := c.alignRead(c.alignWidth(width)); err != nil {
		return nil, true, err
	}
	raw, err := c.buf.Read(n * width)
	if err != nil {
		return nil, true, err
	}
	out := make([]T, n)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), n*width), raw)
	return out, true, nil
}

// SerializeSequence writes a 4-byte element count followed by each
// element via writeElem. The DHEADER framing that wraps a sequence inside
// an appendable/mutable member, if any, is added by the XCDR layer, not
// here. When T is a fixed-width primitive and host/wire endianness agree,
// the elements are written with one memcopy instead of one writeElem
// call per element.
func SerializeSequence[T any](c *Codec, elems []T, writeElem func(*Codec, T) error) error {
	if err := c.WriteUint32(uint32(len(elems))); err != nil {
		return err
	}
	if handled, err := tryBulkWrite(c, elems); handled {
		return err
	}
	for _, e := range elems {
		if err := writeElem(c, e); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeSequence reads a 4-byte element count, bounds-checks it
// against the remaining buffer, then reads that many elements via
// readElem (or via a single bulk memcopy, see tryBulkRead).
func DeserializeSequence[T any](c *Codec, readElem func(*Codec) (T, error)) ([]T, error) {
	count, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := c.checkBounded(count); err != nil {
		return nil, err
	}
	if out, handled, err := tryBulkRead[T](c, int(count)); handled {
		return out, err
	}
	out := make([]T, 0, min(int(count), 1024))
	for i := uint32(0); i < count; i++ {
		e, err := readElem(c)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// SerializeArray writes exactly len(elems) elements with no count prefix.
// Callers must agree on N out of band (it is part of the type, not the
// wire data). Eligible for the same bulk-memcopy path as
// SerializeSequence.
func SerializeArray[T any](c *Codec, elems []T, writeElem func(*Codec, T) error) error {
	if handled, err := tryBulkWrite(c, elems); handled {
		return err
	}
	for _, e := range elems {
		if err := writeElem(c, e); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeArray reads exactly n elements with no count prefix, using
// the same bulk-memcopy path as DeserializeSequence when eligible.
func DeserializeArray[T any](c *Codec, n int, readElem func(*Codec) (T, error)) ([]T, error) {
	if out, handled, err := tryBulkRead[T](c, n); handled {
		return out, err
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		e, err := readElem(c)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// SerializeMap writes a 4-byte pair count, then each key followed by its value.
func SerializeMap[K comparable, V any](c *Codec, m map[K]V, writeKey func(*Codec, K) error, writeVal func(*Codec, V) error) error {
	if err := c.WriteUint32(uint32(len(m))); err != nil {
		return err
	}
	for k, v := range m {
		if err := writeKey(c, k); err != nil {
			return err
		}
		if err := writeVal(c, v); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeMap reads a 4-byte pair count followed by that many key/value
// pairs into dst. Per spec §4.3/§8.2, a non-empty dst is cleared first so
// the result equals the wire-encoded map only.
func DeserializeMap[K comparable, V any](c *Codec, dst map[K]V, readKey func(*Codec) (K, error), readVal func(*Codec) (V, error)) error {
	clear(dst)
	count, err := c.ReadUint32()
	if err != nil {
		return err
	}
	if err := c.checkBounded(count); err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		k, err := readKey(c)
		if err != nil {
			return err
		}
		v, err := readVal(c)
		if err != nil {
			return err
		}
		dst[k] = v
	}
	return nil
}
