package vmem

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/internal/native"
	"github.com/vkngwrapper/vidmem/internal/utils"
)

type MemoryType uint32

const (
	// MemoryTypeTexture is memory backed by a texture of its own
	MemoryTypeTexture MemoryType = iota
	// MemoryTypeArray is memory backed by one slice of its allocator's shared texture array
	MemoryTypeArray
	// MemoryTypeStaging is memory backed by a CPU-accessible staging texture, with no GPU texture paired
	// to it
	MemoryTypeStaging
)

var memoryTypeToString = map[MemoryType]string{}

func init() {
	memoryTypeToString[MemoryTypeTexture] = "MemoryTypeTexture"
	memoryTypeToString[MemoryTypeArray] = "MemoryTypeArray"
	memoryTypeToString[MemoryTypeStaging] = "MemoryTypeStaging"
}

func (t MemoryType) String() string {
	str, ok := memoryTypeToString[t]
	if !ok {
		return fmt.Sprintf("MemoryType(%d)", uint32(t))
	}
	return str
}

// Memory is one allocated unit of GPU memory: a standalone texture, a slice of a shared texture array,
// or a staging texture. It is reference counted; when the last reference is released it is returned to
// the allocator that created it.
//
// Map and Unmap bridge CPU access through a lazily created staging texture. Views are created on first
// request and cached until the memory is freed.
type Memory struct {
	references int32

	logger           *slog.Logger
	allocator        *Allocator
	memoryType       MemoryType
	texture          *native.Texture
	desc             device.TextureDesc
	subresourceIndex int
	size             int

	lock utils.OptionalMutex

	// CPU map state
	staging       *native.Texture
	cpuMapCount   int
	mapped        device.MappedSubresource
	needsUpload   bool
	needsDownload bool

	shaderResourceViews []*native.View
	renderTargetViews   []*native.View
	decoderOutputView   *native.View
	processorInputView  *native.View
	processorOutputView *native.View
}

var _ MemoryMapper = &Memory{}

func newMemory(allocator *Allocator, memoryType MemoryType, texture *native.Texture, desc device.TextureDesc, subresourceIndex int, size int) *Memory {
	return &Memory{
		references:       1,
		logger:           allocator.logger,
		allocator:        allocator,
		memoryType:       memoryType,
		texture:          texture,
		desc:             desc,
		subresourceIndex: subresourceIndex,
		size:             size,
		lock: utils.OptionalMutex{
			UseMutex: allocator.useMutex,
		},
	}
}

// Texture returns the native texture backing this memory. For array memory, this is the whole
// shared texture array; SubresourceIndex identifies the slice.
func (m *Memory) Texture() device.Texture {
	return m.texture.Handle()
}

// SubresourceIndex returns the array slice backing this memory, or 0 for textures that are not arrays
func (m *Memory) SubresourceIndex() int {
	return m.subresourceIndex
}

// Descriptor returns the descriptor the backing texture was created with
func (m *Memory) Descriptor() device.TextureDesc {
	return m.desc
}

func (m *Memory) Type() MemoryType {
	return m.memoryType
}

// Size returns the number of bytes of CPU-visible memory this memory was allocated to hold
func (m *Memory) Size() int {
	return m.size
}

func (m *Memory) Allocator() *Allocator {
	return m.allocator
}

// Ref adds a reference to the memory and returns it
func (m *Memory) Ref() *Memory {
	newCount := atomic.AddInt32(&m.references, 1)
	if newCount <= 1 {
		panic("memory was referenced after it was freed")
	}
	return m
}

// Release drops a reference to the memory. Releasing the last reference frees it.
func (m *Memory) Release() {
	newCount := atomic.AddInt32(&m.references, -1)
	if newCount < 0 {
		panic("memory references went negative")
	}

	if newCount == 0 {
		m.allocator.free(m)
	}
}

// releaseResources drops every native reference held by the memory
func (m *Memory) releaseResources() {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.cpuMapCount > 0 {
		m.logger.Warn("memory freed while mapped for CPU access", slog.Int("MapCount", m.cpuMapCount))
		target := m.staging
		if m.memoryType == MemoryTypeStaging {
			target = m.texture
		}
		m.allocator.context.Unmap(target, 0)
		m.cpuMapCount = 0
	}

	for _, view := range m.shaderResourceViews {
		view.Release()
	}
	m.shaderResourceViews = nil

	for _, view := range m.renderTargetViews {
		view.Release()
	}
	m.renderTargetViews = nil

	for _, view := range []*native.View{m.decoderOutputView, m.processorInputView, m.processorOutputView} {
		if view != nil {
			view.Release()
		}
	}
	m.decoderOutputView = nil
	m.processorInputView = nil
	m.processorOutputView = nil

	if m.staging != nil {
		m.staging.Release()
		m.staging = nil
	}

	m.texture.Release()
}
