package cdr

import "github.com/marmos91/gocdr/pkg/bufpool"

// BufferMode selects whether a Buffer may grow past its initial capacity.
type BufferMode int

const (
	// BorrowedFixed wraps a caller-supplied slice; writes past its end
	// fail with ErrNotEnoughMemory. Used for decoding and for bounded
	// encoding into a pre-sized frame.
	BorrowedFixed BufferMode = iota
	// OwnedGrowable starts from a pool-backed slice and doubles on
	// overflow, up to an optional hard cap (0 = no cap, the documented
	// default per spec §9's open question on cap interaction).
	OwnedGrowable
	// Discard advances current without storing bytes; writes always
	// succeed and reads are never issued against it. Used by
	// NewSizeCalculator to measure a serialization's length without
	// allocating for it.
	Discard
)

// Buffer is the raw octet region a Codec reads and writes through. It
// tracks three positions — begin (the window origin), current (the
// read/write cursor) and end (one past the last addressable byte) — with
// the invariant begin <= current <= end. Alignment is measured from a
// separate align origin (see AlignOrigin), not from begin.
//
// A Buffer may be moved but never copied; the Codec treats it as its
// single, exclusive source of truth for the duration of a session.
type Buffer struct {
	data       []byte
	begin      int
	current    int
	end        int
	alignOrig  int
	mode       BufferMode
	hardCap    int
	pool       *bufpool.Pool
	fromPool   bool
}

// NewBuffer wraps an existing slice as a borrowed-fixed Buffer. Writes
// that would exceed len(data) fail; the slice is never grown.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{
		data: data,
		end:  len(data),
		mode: BorrowedFixed,
	}
}

// NewGrowableBuffer creates an owned, growable Buffer backed by the
// package buffer pool. initialSize is the starting capacity; hardCap, if
// non-zero, is the maximum the buffer is ever allowed to grow to.
func NewGrowableBuffer(initialSize, hardCap int) *Buffer {
	if initialSize <= 0 {
		initialSize = bufpool.DefaultSmallSize
	}
	buf := bufpool.Get(initialSize)
	return &Buffer{
		data:     buf,
		end:      len(buf),
		mode:     OwnedGrowable,
		hardCap:  hardCap,
		pool:     nil, // uses the package-global pool via bufpool.Get/Put
		fromPool: true,
	}
}

// NewDiscardBuffer creates a write-only, unbounded Buffer that counts
// bytes without storing them.
func NewDiscardBuffer() *Buffer {
	return &Buffer{mode: Discard, end: int(^uint(0) >> 1)}
}

// Release returns an owned buffer's backing slice to the pool. Safe to
// call on a borrowed-fixed Buffer (no-op).
func (b *Buffer) Release() {
	if b.mode == OwnedGrowable && b.fromPool {
		bufpool.Put(b.data)
		b.data = nil
		b.fromPool = false
	}
}

// Begin returns the buffer's window origin.
func (b *Buffer) Begin() int { return b.begin }

// Current returns the read/write cursor position.
func (b *Buffer) Current() int { return b.current }

// End returns one past the last addressable byte.
func (b *Buffer) End() int { return b.end }

// AlignOrigin returns the offset alignment is measured from (spec
// invariant 1: never absolute buffer start unless explicitly reset there).
func (b *Buffer) AlignOrigin() int { return b.alignOrig }

// SetAlignOrigin sets the alignment origin, e.g. to current right after
// reading/writing an encapsulation header (spec §4.4).
func (b *Buffer) SetAlignOrigin(offset int) { b.alignOrig = offset }

// Len returns the number of bytes written/consumed so far relative to begin.
func (b *Buffer) Len() int { return b.current - b.begin }

// Bytes returns the valid, written prefix of the backing slice: [begin, current).
func (b *Buffer) Bytes() []byte { return b.data[b.begin:b.current] }

// ensureCapacity grows an owned buffer so that current+n <= end, doubling
// until sufficient or the hard cap is hit. Borrowed-fixed buffers never grow.
func (b *Buffer) ensureCapacity(n int) error {
	need := b.current + n
	if need <= b.end {
		return nil
	}
	if b.mode != OwnedGrowable {
		return wrapErr("grow", b.current, ErrNotEnoughMemory)
	}
	newCap := len(b.data)
	if newCap == 0 {
		newCap = bufpool.DefaultSmallSize
	}
	for newCap < need {
		newCap *= 2
	}
	if b.hardCap > 0 && newCap > b.hardCap {
		if need > b.hardCap {
			return wrapErr("grow past hard cap", b.current, ErrNotEnoughMemory)
		}
		newCap = b.hardCap
	}
	grown := bufpool.Get(newCap)
	copy(grown, b.data[:b.current])
	if b.fromPool {
		bufpool.Put(b.data)
	}
	b.data = grown
	b.end = len(grown)
	b.fromPool = true
	return nil
}

// Write copies bytes at current and advances current by len(p). On a
// Discard buffer it only advances current.
func (b *Buffer) Write(p []byte) error {
	if b.mode == Discard {
		b.current += len(p)
		return nil
	}
	if err := b.ensureCapacity(len(p)); err != nil {
		return err
	}
	copy(b.data[b.current:], p)
	b.current += len(p)
	return nil
}

// Read slices n bytes at current and advances current by n. The returned
// slice aliases the buffer's backing array and must not be retained past
// the buffer's lifetime without copying.
func (b *Buffer) Read(n int) ([]byte, error) {
	if b.current+n > b.end {
		return nil, wrapErr("read", b.current, ErrNotEnoughMemory)
	}
	out := b.data[b.current : b.current+n]
	b.current += n
	return out, nil
}

// Jump advances current by n without reading or writing — used to skip
// an unknown member's payload by a length the header already told us.
func (b *Buffer) Jump(n int) error {
	if b.current+n > b.end || b.current+n < b.begin {
		return wrapErr("jump", b.current, ErrNotEnoughMemory)
	}
	b.current += n
	return nil
}

// JumpTo sets current to an absolute offset, used by the appendable
// reader to skip straight to a DHEADER's recorded limit.
func (b *Buffer) JumpTo(offset int) error {
	if offset > b.end || offset < b.begin {
		return wrapErr("jump_to", b.current, ErrNotEnoughMemory)
	}
	b.current = offset
	return nil
}

// PatchAt overwrites bytes already written at a prior offset, without
// moving current. Used to back-patch a DHEADER/length placeholder once
// the true payload length is known (spec §9, "Deferred-patch via saved
// state" — buffers may reallocate, so callers must use offsets captured
// via State, never raw slices).
func (b *Buffer) PatchAt(offset int, p []byte) error {
	if offset < b.begin || offset+len(p) > b.current {
		return wrapErr("patch", offset, ErrBadParam)
	}
	if b.mode == Discard {
		return nil
	}
	copy(b.data[offset:], p)
	return nil
}

// Reserve ensures n more bytes can be written without growing further,
// without writing anything. Exposed for callers that want to pre-size a
// composite's payload (e.g. before a tight scalar loop).
func (b *Buffer) Reserve(n int) error {
	return b.ensureCapacity(n)
}

// Reset rewinds current and alignOrig to begin. Does not shrink an owned
// buffer's backing slice.
func (b *Buffer) Reset() {
	b.current = b.begin
	b.alignOrig = b.begin
}
