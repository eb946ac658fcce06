package cdr

// State is a lightweight snapshot of codec position used to back-patch
// deferred length prefixes (DHEADER) and to rewind on failure. States
// carry only offsets and flags, never raw pointers/slices, so they
// remain valid across a growable buffer's reallocation (spec §9).
type State struct {
	Current     int
	AlignOrigin int
	Kind        ExtensibilityKind
	// dheaderAt is the offset the DHEADER placeholder was written at, or
	// -1 if the active kind doesn't use one (Final/classic PlainCdr).
	dheaderAt int
}

// GetState captures the codec's current position and active extensibility
// kind so it can be restored later (e.g. to retry after a failed member).
func (c *Codec) GetState() State {
	return State{
		Current:     c.buf.Current(),
		AlignOrigin: c.buf.AlignOrigin(),
		Kind:        c.activeKind,
		dheaderAt:   -1,
	}
}

// SetState rewinds the codec to a previously captured State. Per spec §7,
// no operation rolls back automatically on failure — callers that want a
// "retry from a known-good point" idiom must call GetState before the
// risky operation and SetState on failure.
func (c *Codec) SetState(s State) {
	c.buf.current = s.Current
	c.buf.alignOrig = s.AlignOrigin
	c.activeKind = s.Kind
}
