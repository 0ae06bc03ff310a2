package vmem

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/vidmem/device"
)

// TextureAllocator hands out texture-backed memory
type TextureAllocator interface {
	Alloc(desc device.TextureDesc, flags AllocationFlags, size int) (*Memory, common.VkResult, error)
	AllocStaging(desc device.TextureDesc) (*Memory, int, common.VkResult, error)
	SetFlushing(flushing bool)
	ArraySize() (arraySize int, numInUse int)
	Destroy()
}

// MemoryMapper gives CPU or GPU access to memory
type MemoryMapper interface {
	Map(flags MapFlags) (MapInfo, error)
	Unmap(info MapInfo) error
}
