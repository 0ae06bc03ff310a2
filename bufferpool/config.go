package bufferpool

import (
	"github.com/vkngwrapper/vidmem/format"
	"github.com/vkngwrapper/vidmem/vmem"
)

// Config is the configuration negotiated for a Pool
type Config struct {
	// Info is the frame format the pool produces buffers for. It is required.
	Info *format.VideoInfo

	// MinBuffers is the number of buffers allocated by Start
	MinBuffers int
	// MaxBuffers is the maximum number of buffers, or 0 for no limit. In texture array mode it is
	// clamped to the array size.
	MaxBuffers int

	// Allocator is the allocator buffers are allocated from. If it is nil, the pool creates one. It must
	// be a *vmem.Allocator.
	Allocator vmem.TextureAllocator
	// Params describes the textures to allocate. If it is nil, default params are built from Info with
	// device.BindShaderResource. The pool keeps a copy.
	Params *vmem.AllocationParams

	// VideoMeta attaches a VideoMeta describing the CPU layout to every buffer
	VideoMeta bool

	// BufferSize is filled in by Pool.Configure with the size of each buffer in CPU memory
	BufferSize int
}
