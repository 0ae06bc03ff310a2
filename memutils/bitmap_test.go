package memutils_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/vidmem/memutils"
)

func TestSlotBitmapFirstFree(t *testing.T) {
	bitmap := memutils.NewSlotBitmap(3)
	require.Equal(t, 3, bitmap.Len())
	require.Equal(t, 0, bitmap.FirstFree())

	require.NoError(t, bitmap.Set(0))
	require.NoError(t, bitmap.Set(1))
	require.Equal(t, 2, bitmap.FirstFree())

	require.NoError(t, bitmap.Set(2))
	require.Equal(t, -1, bitmap.FirstFree())
	require.Equal(t, 3, bitmap.Count())

	require.NoError(t, bitmap.Clear(1))
	require.Equal(t, 1, bitmap.FirstFree())
	require.False(t, bitmap.InUse(1))
	require.True(t, bitmap.InUse(2))
	require.Equal(t, 2, bitmap.Count())
}

func TestSlotBitmapSpansWords(t *testing.T) {
	bitmap := memutils.NewSlotBitmap(130)

	for i := 0; i < 129; i++ {
		require.NoError(t, bitmap.Set(i))
	}
	require.Equal(t, 129, bitmap.FirstFree())

	require.NoError(t, bitmap.Set(129))
	require.Equal(t, -1, bitmap.FirstFree())

	require.NoError(t, bitmap.Clear(64))
	require.Equal(t, 64, bitmap.FirstFree())
}

func TestSlotBitmapFullWordIsNotFree(t *testing.T) {
	bitmap := memutils.NewSlotBitmap(64)
	for i := 0; i < 64; i++ {
		require.NoError(t, bitmap.Set(i))
	}

	require.Equal(t, -1, bitmap.FirstFree())
}

func TestSlotBitmapErrors(t *testing.T) {
	bitmap := memutils.NewSlotBitmap(2)

	require.Error(t, bitmap.Set(2))
	require.Error(t, bitmap.Set(-1))
	require.Error(t, bitmap.Clear(0))

	require.NoError(t, bitmap.Set(0))
	require.Error(t, bitmap.Set(0))
}
