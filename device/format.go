package device

import "fmt"

// Format is a native texture or view format
type Format int32

const (
	FormatUnknown Format = iota
	FormatR8Unorm
	FormatR8G8Unorm
	FormatR16Unorm
	FormatR16G16Unorm
	FormatB8G8R8A8Unorm
	FormatR8G8B8A8Unorm
	FormatR10G10B10A2Unorm
	FormatR16G16B16A16Unorm
	FormatG8R8G8B8Unorm
	FormatR8G8B8G8Unorm
	FormatAYUV
	FormatYUY2
	FormatY210
	FormatY410
	FormatNV12
	FormatP010
	FormatP016
)

var formatToString = map[Format]string{}

func init() {
	formatToString[FormatUnknown] = "FormatUnknown"
	formatToString[FormatR8Unorm] = "FormatR8Unorm"
	formatToString[FormatR8G8Unorm] = "FormatR8G8Unorm"
	formatToString[FormatR16Unorm] = "FormatR16Unorm"
	formatToString[FormatR16G16Unorm] = "FormatR16G16Unorm"
	formatToString[FormatB8G8R8A8Unorm] = "FormatB8G8R8A8Unorm"
	formatToString[FormatR8G8B8A8Unorm] = "FormatR8G8B8A8Unorm"
	formatToString[FormatR10G10B10A2Unorm] = "FormatR10G10B10A2Unorm"
	formatToString[FormatR16G16B16A16Unorm] = "FormatR16G16B16A16Unorm"
	formatToString[FormatG8R8G8B8Unorm] = "FormatG8R8G8B8Unorm"
	formatToString[FormatR8G8B8G8Unorm] = "FormatR8G8B8G8Unorm"
	formatToString[FormatAYUV] = "FormatAYUV"
	formatToString[FormatYUY2] = "FormatYUY2"
	formatToString[FormatY210] = "FormatY210"
	formatToString[FormatY410] = "FormatY410"
	formatToString[FormatNV12] = "FormatNV12"
	formatToString[FormatP010] = "FormatP010"
	formatToString[FormatP016] = "FormatP016"
}

func (f Format) String() string {
	str, ok := formatToString[f]
	if !ok {
		return fmt.Sprintf("Format(%d)", int32(f))
	}
	return str
}

// IsSemiPlanar returns true for 4:2:0 formats that hold a luma plane and an interleaved chroma plane
// in a single texture. Textures of these formats must have even dimensions.
func (f Format) IsSemiPlanar() bool {
	return f == FormatNV12 || f == FormatP010 || f == FormatP016
}

// RowBytes returns the unpadded number of bytes in the first row of a texture of this format. Hardware
// may pad rows beyond this size, so it is a lower bound for the row pitch.
func (f Format) RowBytes(width int) int {
	switch f {
	case FormatR8Unorm, FormatNV12:
		return width
	case FormatR8G8Unorm, FormatR16Unorm, FormatP010, FormatP016:
		return width * 2
	case FormatYUY2, FormatG8R8G8B8Unorm, FormatR8G8B8G8Unorm:
		return ((width + 1) / 2) * 4
	case FormatY210:
		return ((width + 1) / 2) * 8
	case FormatR16G16Unorm, FormatB8G8R8A8Unorm, FormatR8G8B8A8Unorm, FormatR10G10B10A2Unorm, FormatAYUV, FormatY410:
		return width * 4
	case FormatR16G16B16A16Unorm:
		return width * 8
	}

	return 0
}
