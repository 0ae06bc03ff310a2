package vmem

import "github.com/vkngwrapper/core/v2/common"

// AllocationFlags expose options for how memory is allocated
type AllocationFlags int32

var allocationFlagsMapping = common.NewFlagStringMapping[AllocationFlags]()

func (f AllocationFlags) Register(str string) {
	allocationFlagsMapping.Register(f, str)
}
func (f AllocationFlags) String() string {
	return allocationFlagsMapping.FlagsToString(f)
}

const (
	// AllocationTextureArray instructs the allocator to hand out slices of a single shared texture array
	// instead of creating a texture per allocation. The number of slices is the ArraySize of the first
	// descriptor passed to Allocator.Alloc. When every slice is in use, Alloc blocks until one is freed.
	AllocationTextureArray AllocationFlags = 1 << iota
)

// MapFlags indicate the access requested by Memory.Map
type MapFlags int32

var mapFlagsMapping = common.NewFlagStringMapping[MapFlags]()

func (f MapFlags) Register(str string) {
	mapFlagsMapping.Register(f, str)
}
func (f MapFlags) String() string {
	return mapFlagsMapping.FlagsToString(f)
}

const (
	// MapRead requests read access
	MapRead MapFlags = 1 << iota
	// MapWrite requests write access
	MapWrite
	// MapGPU requests the native texture instead of CPU-visible bytes. Combine with MapRead and MapWrite
	// to declare how the GPU will access the texture.
	MapGPU

	MapReadWrite = MapRead | MapWrite
)

func init() {
	AllocationTextureArray.Register("AllocationTextureArray")

	MapRead.Register("MapRead")
	MapWrite.Register("MapWrite")
	MapGPU.Register("MapGPU")
}
