package format

import (
	"fmt"

	"github.com/vkngwrapper/vidmem/device"
)

// VideoFormat is an abstract pixel format, independent of how it is stored on the device
type VideoFormat int32

const (
	VideoFormatUnknown VideoFormat = iota
	VideoFormatBGRA
	VideoFormatRGBA
	VideoFormatRGB10A2
	VideoFormatRGBA64
	VideoFormatVUYA
	VideoFormatYUY2
	VideoFormatUYVY
	VideoFormatY210
	VideoFormatY410
	VideoFormatNV12
	VideoFormatP010
	VideoFormatP016
	VideoFormatI420
	VideoFormatI420_10LE
	VideoFormatY444
	VideoFormatY444_16LE
	VideoFormatGray8
	VideoFormatGray16
)

var videoFormatToString = map[VideoFormat]string{}

func init() {
	videoFormatToString[VideoFormatUnknown] = "Unknown"
	videoFormatToString[VideoFormatBGRA] = "BGRA"
	videoFormatToString[VideoFormatRGBA] = "RGBA"
	videoFormatToString[VideoFormatRGB10A2] = "RGB10A2_LE"
	videoFormatToString[VideoFormatRGBA64] = "RGBA64_LE"
	videoFormatToString[VideoFormatVUYA] = "VUYA"
	videoFormatToString[VideoFormatYUY2] = "YUY2"
	videoFormatToString[VideoFormatUYVY] = "UYVY"
	videoFormatToString[VideoFormatY210] = "Y210"
	videoFormatToString[VideoFormatY410] = "Y410"
	videoFormatToString[VideoFormatNV12] = "NV12"
	videoFormatToString[VideoFormatP010] = "P010_10LE"
	videoFormatToString[VideoFormatP016] = "P016_LE"
	videoFormatToString[VideoFormatI420] = "I420"
	videoFormatToString[VideoFormatI420_10LE] = "I420_10LE"
	videoFormatToString[VideoFormatY444] = "Y444"
	videoFormatToString[VideoFormatY444_16LE] = "Y444_16LE"
	videoFormatToString[VideoFormatGray8] = "GRAY8"
	videoFormatToString[VideoFormatGray16] = "GRAY16_LE"
}

func (f VideoFormat) String() string {
	str, ok := videoFormatToString[f]
	if !ok {
		return fmt.Sprintf("VideoFormat(%d)", int32(f))
	}
	return str
}

// MaxPlanes is the largest number of planes any supported format has
const MaxPlanes = 4

// PlaneInfo describes one logical plane of a format
type PlaneInfo struct {
	// Format is the native format the plane is stored in when each plane gets its own texture
	Format device.Format
	// WidthShift and HeightShift are the log2 subsampling factors of the plane relative to the frame
	WidthShift  int
	HeightShift int
	// PixelStride is the number of bytes used by one sample of the plane, without padding
	PixelStride int
}

// Info maps an abstract format to its native representation. If Native is not device.FormatUnknown, the
// whole frame fits in one texture of that format, even when the format has more than one logical plane.
// Otherwise each plane is stored in its own texture.
type Info struct {
	Format VideoFormat
	Native device.Format
	Planes []PlaneInfo
}

// NPlanes returns the number of logical planes
func (i *Info) NPlanes() int {
	return len(i.Planes)
}

// NTextures returns the number of textures needed to hold one frame
func (i *Info) NTextures() int {
	if i.Native != device.FormatUnknown {
		return 1
	}
	return len(i.Planes)
}

// IsSemiPlanar returns true for formats stored as a single native 4:2:0 texture with separate luma and
// chroma planes
func (i *Info) IsSemiPlanar() bool {
	return i.Native.IsSemiPlanar()
}

// PlaneWidth returns the width in samples of a plane for the provided frame width
func (i *Info) PlaneWidth(plane int, width int) int {
	return (width + (1 << i.Planes[plane].WidthShift) - 1) >> i.Planes[plane].WidthShift
}

// PlaneHeight returns the height in rows of a plane for the provided frame height
func (i *Info) PlaneHeight(plane int, height int) int {
	return (height + (1 << i.Planes[plane].HeightShift) - 1) >> i.Planes[plane].HeightShift
}
