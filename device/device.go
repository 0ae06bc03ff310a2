// Package device declares the native texture device that vidmem allocates from. Result codes are
// reported as github.com/vkngwrapper/core/v2/common.VkResult, so importing this package links the
// vkngwrapper core bindings, which load libvulkan through cgo. Builds need cgo enabled and a Vulkan
// loader available at link time, even when the device implementation is not Vulkan-backed.
package device

import (
	"github.com/vkngwrapper/core/v2/common"
)

// Texture is a native 2D texture handle. Release drops the caller's reference to it.
type Texture interface {
	Desc() TextureDesc
	Release()
}

// View is a native view handle derived from a Texture
type View interface {
	Release()
}

// ProcessorEnumerator is the native video processor enumerator that processor input and output views
// are created against
type ProcessorEnumerator interface {
	Release()
}

// Device is the native device and its immediate context. Creation calls may be made from any thread.
// Map, Unmap, and CopySubresourceRegion use the immediate context, which is not thread-safe: callers must
// hold Lock for the duration of each of those calls.
//
// Native calls return a common.VkResult as the native result code. A non-nil error always accompanies a
// failing result code.
type Device interface {
	CreateTexture(desc TextureDesc) (Texture, common.VkResult, error)

	CreateShaderResourceView(texture Texture, desc ShaderResourceViewDesc) (View, common.VkResult, error)
	CreateRenderTargetView(texture Texture, desc RenderTargetViewDesc) (View, common.VkResult, error)
	CreateDecoderOutputView(texture Texture, desc DecoderOutputViewDesc) (View, common.VkResult, error)
	CreateProcessorInputView(texture Texture, enumerator ProcessorEnumerator, desc ProcessorInputViewDesc) (View, common.VkResult, error)
	CreateProcessorOutputView(texture Texture, enumerator ProcessorEnumerator, desc ProcessorOutputViewDesc) (View, common.VkResult, error)

	Map(texture Texture, subresource int, mode MapMode) (MappedSubresource, common.VkResult, error)
	Unmap(texture Texture, subresource int)
	CopySubresourceRegion(dst Texture, dstSubresource int, src Texture, srcSubresource int)

	Lock()
	Unlock()
}
