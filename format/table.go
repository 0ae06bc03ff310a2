package format

import (
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/vidmem/device"
)

// Table looks up the native representation of abstract formats
type Table interface {
	Lookup(format VideoFormat) (*Info, bool)
}

type mapTable struct {
	formats *swiss.Map[VideoFormat, *Info]
}

// NewTable creates a Table from a list of format descriptions. Later entries replace earlier entries
// for the same format.
func NewTable(infos ...Info) Table {
	table := &mapTable{
		formats: swiss.NewMap[VideoFormat, *Info](uint32(len(infos))),
	}

	for i := range infos {
		info := infos[i]
		table.formats.Put(info.Format, &info)
	}

	return table
}

func (t *mapTable) Lookup(format VideoFormat) (*Info, bool) {
	return t.formats.Get(format)
}

func single(format VideoFormat, native device.Format, pixelStride int) Info {
	return Info{
		Format: format,
		Native: native,
		Planes: []PlaneInfo{{Format: native, PixelStride: pixelStride}},
	}
}

func semiPlanar(format VideoFormat, native, luma, chroma device.Format, sampleSize int) Info {
	return Info{
		Format: format,
		Native: native,
		Planes: []PlaneInfo{
			{Format: luma, PixelStride: sampleSize},
			{Format: chroma, WidthShift: 1, HeightShift: 1, PixelStride: sampleSize * 2},
		},
	}
}

func planar(format VideoFormat, plane device.Format, sampleSize int, chromaShift int) Info {
	return Info{
		Format: format,
		Native: device.FormatUnknown,
		Planes: []PlaneInfo{
			{Format: plane, PixelStride: sampleSize},
			{Format: plane, WidthShift: chromaShift, HeightShift: chromaShift, PixelStride: sampleSize},
			{Format: plane, WidthShift: chromaShift, HeightShift: chromaShift, PixelStride: sampleSize},
		},
	}
}

var defaultTable = NewTable(
	single(VideoFormatBGRA, device.FormatB8G8R8A8Unorm, 4),
	single(VideoFormatRGBA, device.FormatR8G8B8A8Unorm, 4),
	single(VideoFormatRGB10A2, device.FormatR10G10B10A2Unorm, 4),
	single(VideoFormatRGBA64, device.FormatR16G16B16A16Unorm, 8),
	single(VideoFormatVUYA, device.FormatAYUV, 4),
	single(VideoFormatY410, device.FormatY410, 4),
	single(VideoFormatGray8, device.FormatR8Unorm, 1),
	single(VideoFormatGray16, device.FormatR16Unorm, 2),
	single(VideoFormatYUY2, device.FormatYUY2, 2),
	single(VideoFormatUYVY, device.FormatR8G8B8G8Unorm, 2),
	single(VideoFormatY210, device.FormatY210, 4),
	semiPlanar(VideoFormatNV12, device.FormatNV12, device.FormatR8Unorm, device.FormatR8G8Unorm, 1),
	semiPlanar(VideoFormatP010, device.FormatP010, device.FormatR16Unorm, device.FormatR16G16Unorm, 2),
	semiPlanar(VideoFormatP016, device.FormatP016, device.FormatR16Unorm, device.FormatR16G16Unorm, 2),
	planar(VideoFormatI420, device.FormatR8Unorm, 1, 1),
	planar(VideoFormatI420_10LE, device.FormatR16Unorm, 2, 1),
	planar(VideoFormatY444, device.FormatR8Unorm, 1, 0),
	planar(VideoFormatY444_16LE, device.FormatR16Unorm, 2, 0),
)

// DefaultTable returns the built-in format table
func DefaultTable() Table {
	return defaultTable
}
