package cdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// NewBuffer (borrowed-fixed) Tests
// ============================================================================

func TestNewBuffer(t *testing.T) {
	t.Run("WrapsSliceWithoutCopy", func(t *testing.T) {
		data := []byte{1, 2, 3, 4}
		buf := NewBuffer(data)
		assert.Equal(t, 0, buf.Begin())
		assert.Equal(t, 0, buf.Current())
		assert.Equal(t, 4, buf.End())
	})

	t.Run("WriteFailsPastCapacity", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 2))
		err := buf.Write([]byte{1, 2, 3})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotEnoughMemory)
	})

	t.Run("ReadFailsPastEnd", func(t *testing.T) {
		buf := NewBuffer([]byte{1, 2})
		_, err := buf.Read(3)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotEnoughMemory)
	})
}

// ============================================================================
// NewGrowableBuffer (owned-growable) Tests
// ============================================================================

func TestNewGrowableBuffer(t *testing.T) {
	t.Run("GrowsPastInitialSize", func(t *testing.T) {
		buf := NewGrowableBuffer(4, 0)
		defer buf.Release()

		err := buf.Write(make([]byte, 64))
		require.NoError(t, err)
		assert.Equal(t, 64, buf.Len())
	})

	t.Run("RespectsHardCap", func(t *testing.T) {
		buf := NewGrowableBuffer(4, 16)
		defer buf.Release()

		err := buf.Write(make([]byte, 16))
		require.NoError(t, err)

		err = buf.Write([]byte{1})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotEnoughMemory)
	})

	t.Run("DefaultsSmallSizeForNonPositiveInitial", func(t *testing.T) {
		buf := NewGrowableBuffer(0, 0)
		defer buf.Release()
		assert.GreaterOrEqual(t, buf.End(), 1)
	})

	t.Run("ReleaseIsSafeTwice", func(t *testing.T) {
		buf := NewGrowableBuffer(4, 0)
		buf.Release()
		assert.NotPanics(t, func() { buf.Release() })
	})
}

// ============================================================================
// NewDiscardBuffer Tests
// ============================================================================

func TestNewDiscardBuffer(t *testing.T) {
	t.Run("AdvancesWithoutStoring", func(t *testing.T) {
		buf := NewDiscardBuffer()
		err := buf.Write(make([]byte, 1024))
		require.NoError(t, err)
		assert.Equal(t, 1024, buf.Len())
	})

	t.Run("ReleaseIsNoop", func(t *testing.T) {
		buf := NewDiscardBuffer()
		assert.NotPanics(t, func() { buf.Release() })
	})
}

// ============================================================================
// Positioning Tests
// ============================================================================

func TestBufferPositioning(t *testing.T) {
	t.Run("JumpAdvancesCurrent", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 8))
		err := buf.Jump(4)
		require.NoError(t, err)
		assert.Equal(t, 4, buf.Current())
	})

	t.Run("JumpPastEndFails", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 4))
		err := buf.Jump(8)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotEnoughMemory)
	})

	t.Run("JumpToSetsAbsoluteOffset", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 8))
		err := buf.JumpTo(6)
		require.NoError(t, err)
		assert.Equal(t, 6, buf.Current())
	})

	t.Run("JumpToPastEndFails", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 4))
		err := buf.JumpTo(5)
		require.Error(t, err)
	})

	t.Run("ResetRewindsCurrentAndAlignOrigin", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 8))
		buf.SetAlignOrigin(2)
		_ = buf.Jump(4)
		buf.Reset()
		assert.Equal(t, buf.Begin(), buf.Current())
		assert.Equal(t, buf.Begin(), buf.AlignOrigin())
	})
}

// ============================================================================
// PatchAt Tests
// ============================================================================

func TestBufferPatchAt(t *testing.T) {
	t.Run("OverwritesWithoutMovingCurrent", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 8))
		require.NoError(t, buf.Write([]byte{0, 0, 0, 0}))
		before := buf.Current()

		err := buf.PatchAt(0, []byte{1, 2, 3, 4})
		require.NoError(t, err)
		assert.Equal(t, before, buf.Current())
		assert.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())
	})

	t.Run("RejectsPatchPastCurrent", func(t *testing.T) {
		buf := NewBuffer(make([]byte, 8))
		require.NoError(t, buf.Write([]byte{0, 0}))

		err := buf.PatchAt(0, []byte{1, 2, 3, 4})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadParam)
	})

	t.Run("NoopOnDiscardBuffer", func(t *testing.T) {
		buf := NewDiscardBuffer()
		require.NoError(t, buf.Write([]byte{0, 0, 0, 0}))
		err := buf.PatchAt(0, []byte{1, 2, 3, 4})
		require.NoError(t, err)
	})
}

// ============================================================================
// Reserve Tests
// ============================================================================

func TestBufferReserve(t *testing.T) {
	t.Run("GrowsWithoutWriting", func(t *testing.T) {
		buf := NewGrowableBuffer(4, 0)
		defer buf.Release()

		err := buf.Reserve(64)
		require.NoError(t, err)
		assert.Equal(t, 0, buf.Len())
		assert.GreaterOrEqual(t, buf.End(), 64)
	})
}
