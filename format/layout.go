package format

import (
	"github.com/vkngwrapper/vidmem/device"
)

// NativeLayout computes the CPU layout of a mapped texture of the provided native format, given the
// texture height and the row pitch returned by the device. It returns false for formats it does not
// know how to lay out.
func NativeLayout(native device.Format, height int, rowPitch int) (Layout, bool) {
	var layout Layout

	switch native {
	case device.FormatR8Unorm,
		device.FormatR8G8Unorm,
		device.FormatR16Unorm,
		device.FormatR16G16Unorm,
		device.FormatB8G8R8A8Unorm,
		device.FormatR8G8B8A8Unorm,
		device.FormatR10G10B10A2Unorm,
		device.FormatR16G16B16A16Unorm,
		device.FormatG8R8G8B8Unorm,
		device.FormatR8G8B8G8Unorm,
		device.FormatAYUV,
		device.FormatYUY2,
		device.FormatY210,
		device.FormatY410:
		layout.Planes = 1
		layout.Stride[0] = rowPitch
		layout.Size = rowPitch * height
	case device.FormatNV12, device.FormatP010, device.FormatP016:
		layout.Planes = 2
		layout.Stride[0] = rowPitch
		layout.Stride[1] = rowPitch
		layout.Offset[1] = rowPitch * height
		layout.Size = layout.Offset[1] + rowPitch*((height+1)/2)
	default:
		return layout, false
	}

	return layout, true
}

// NaiveStride returns the unpadded row size of a plane of the provided format at the provided frame width
func NaiveStride(info *Info, plane int, width int) int {
	return info.PlaneWidth(plane, width) * info.Planes[plane].PixelStride
}
