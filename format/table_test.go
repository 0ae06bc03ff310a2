package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/format"
)

func TestDefaultTableSemiPlanar(t *testing.T) {
	info, ok := format.DefaultTable().Lookup(format.VideoFormatNV12)
	require.True(t, ok)

	require.Equal(t, device.FormatNV12, info.Native)
	require.Equal(t, 2, info.NPlanes())
	require.Equal(t, 1, info.NTextures())
	require.True(t, info.IsSemiPlanar())
	require.Equal(t, device.FormatR8Unorm, info.Planes[0].Format)
	require.Equal(t, device.FormatR8G8Unorm, info.Planes[1].Format)

	require.Equal(t, 641, info.PlaneWidth(0, 641))
	require.Equal(t, 321, info.PlaneWidth(1, 641))
	require.Equal(t, 240, info.PlaneHeight(1, 480))
}

func TestDefaultTablePlanar(t *testing.T) {
	info, ok := format.DefaultTable().Lookup(format.VideoFormatI420)
	require.True(t, ok)

	require.Equal(t, device.FormatUnknown, info.Native)
	require.Equal(t, 3, info.NPlanes())
	require.Equal(t, 3, info.NTextures())
	require.False(t, info.IsSemiPlanar())
	for _, plane := range info.Planes {
		require.Equal(t, device.FormatR8Unorm, plane.Format)
	}

	require.Equal(t, 160, format.NaiveStride(info, 1, 320))
	require.Equal(t, 320, format.NaiveStride(info, 0, 320))
}

func TestDefaultTableUnknown(t *testing.T) {
	_, ok := format.DefaultTable().Lookup(format.VideoFormatUnknown)
	require.False(t, ok)
}

func TestCustomTableReplacesEntries(t *testing.T) {
	table := format.NewTable(
		format.Info{Format: format.VideoFormatBGRA, Native: device.FormatB8G8R8A8Unorm, Planes: []format.PlaneInfo{{Format: device.FormatB8G8R8A8Unorm, PixelStride: 4}}},
		format.Info{Format: format.VideoFormatBGRA, Native: device.FormatR8G8B8A8Unorm, Planes: []format.PlaneInfo{{Format: device.FormatR8G8B8A8Unorm, PixelStride: 4}}},
	)

	info, ok := table.Lookup(format.VideoFormatBGRA)
	require.True(t, ok)
	require.Equal(t, device.FormatR8G8B8A8Unorm, info.Native)

	_, ok = table.Lookup(format.VideoFormatNV12)
	require.False(t, ok)
}

func TestVideoFormatString(t *testing.T) {
	require.Equal(t, "NV12", format.VideoFormatNV12.String())
	require.Equal(t, "P010_10LE", format.VideoFormatP010.String())
	require.Equal(t, "VideoFormat(999)", format.VideoFormat(999).String())
}
