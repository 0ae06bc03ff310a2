package bufferpool

import (
	"github.com/vkngwrapper/vidmem/format"
	"github.com/vkngwrapper/vidmem/vmem"
)

// VideoMeta describes the CPU layout of a buffer's planes. Offsets are relative to the start of the
// buffer, counting the memories in order.
type VideoMeta struct {
	Format  format.VideoFormat
	Width   int
	Height  int
	NPlanes int
	Offset  [format.MaxPlanes]int
	Stride  [format.MaxPlanes]int
}

// Buffer is one frame: one Memory per texture, plus optional layout metadata
type Buffer struct {
	pool       *Pool
	generation uint64
	memories   []*vmem.Memory
	// acquired is guarded by the pool's mutex
	acquired bool

	Meta *VideoMeta
}

// Memories returns the memories backing the buffer
func (b *Buffer) Memories() []*vmem.Memory {
	return b.memories
}

// Memory returns one of the memories backing the buffer
func (b *Buffer) Memory(index int) *vmem.Memory {
	return b.memories[index]
}

// Size returns the combined CPU size of the buffer's memories
func (b *Buffer) Size() int {
	size := 0
	for _, mem := range b.memories {
		size += mem.Size()
	}
	return size
}

// Release returns the buffer to its pool. A buffer must be released exactly once per Acquire.
func (b *Buffer) Release() {
	b.pool.releaseBuffer(b)
}

func (b *Buffer) free() {
	for _, mem := range b.memories {
		mem.Release()
	}
	b.memories = nil
}
