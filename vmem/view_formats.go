package vmem

import (
	"github.com/vkngwrapper/vidmem/device"
	"golang.org/x/exp/slices"
)

var shaderResourceViewFormats = map[device.Format][]device.Format{}
var renderTargetViewFormats = map[device.Format][]device.Format{}

func init() {
	for _, format := range []device.Format{
		device.FormatB8G8R8A8Unorm,
		device.FormatR8G8B8A8Unorm,
		device.FormatR10G10B10A2Unorm,
		device.FormatR8Unorm,
		device.FormatR8G8Unorm,
		device.FormatR16Unorm,
		device.FormatR16G16Unorm,
		device.FormatR16G16B16A16Unorm,
	} {
		shaderResourceViewFormats[format] = []device.Format{format}
		renderTargetViewFormats[format] = []device.Format{format}
	}

	// Packed 4:2:2 formats can only be sampled
	shaderResourceViewFormats[device.FormatG8R8G8B8Unorm] = []device.Format{device.FormatG8R8G8B8Unorm}
	shaderResourceViewFormats[device.FormatR8G8B8G8Unorm] = []device.Format{device.FormatR8G8B8G8Unorm}
	shaderResourceViewFormats[device.FormatYUY2] = []device.Format{device.FormatR8G8B8A8Unorm}
	shaderResourceViewFormats[device.FormatY210] = []device.Format{device.FormatR16G16B16A16Unorm}
	shaderResourceViewFormats[device.FormatY410] = []device.Format{device.FormatR10G10B10A2Unorm}

	shaderResourceViewFormats[device.FormatAYUV] = []device.Format{device.FormatR8G8B8A8Unorm}
	renderTargetViewFormats[device.FormatAYUV] = []device.Format{device.FormatR8G8B8A8Unorm}

	// Semi-planar formats get one view for luma and one for interleaved chroma
	shaderResourceViewFormats[device.FormatNV12] = []device.Format{device.FormatR8Unorm, device.FormatR8G8Unorm}
	renderTargetViewFormats[device.FormatNV12] = []device.Format{device.FormatR8Unorm, device.FormatR8G8Unorm}
	for _, format := range []device.Format{device.FormatP010, device.FormatP016} {
		shaderResourceViewFormats[format] = []device.Format{device.FormatR16Unorm, device.FormatR16G16Unorm}
		renderTargetViewFormats[format] = []device.Format{device.FormatR16Unorm, device.FormatR16G16Unorm}
	}
}

// ShaderResourceViewFormats returns the formats of the shader resource views created for a texture of
// the provided format
func ShaderResourceViewFormats(format device.Format) ([]device.Format, bool) {
	formats, ok := shaderResourceViewFormats[format]
	return slices.Clone(formats), ok
}

// RenderTargetViewFormats returns the formats of the render target views created for a texture of the
// provided format
func RenderTargetViewFormats(format device.Format) ([]device.Format, bool) {
	formats, ok := renderTargetViewFormats[format]
	return slices.Clone(formats), ok
}

func supportsProcessorInput(bindFlags device.BindFlags) bool {
	return bindFlags == 0 ||
		bindFlags&(device.BindDecoder|device.BindVideoEncoder|device.BindRenderTarget|device.BindUnorderedAccess) != 0
}
