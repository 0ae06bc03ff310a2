package vmem

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/format"
	"github.com/vkngwrapper/vidmem/internal/native"
	"github.com/vkngwrapper/vidmem/memutils"
)

// Allocator creates texture-backed Memory. With AllocationTextureArray it hands out slices of one
// shared texture array, blocking when every slice is in use until one is freed or the allocator
// starts flushing.
type Allocator struct {
	useMutex    bool
	logger      *slog.Logger
	createFlags CreateFlags
	context     *native.DeviceContext

	// Number of Memory objects that have been allocated and not freed
	memoryCount int32

	// Everything below is guarded by slotMutex
	slotMutex sync.Mutex
	slotCond  *sync.Cond
	flushing  bool
	destroyed bool
	// generation is incremented every time slot waiters are woken
	generation   uint64
	arrayTexture *native.Texture
	slots        *memutils.SlotBitmap
	numInUse     int

	// Views that outlive the Memory they were created for, keyed by array slice
	decoderOutputViews  *swiss.Map[int, *native.View]
	processorInputViews *swiss.Map[int, *native.View]
}

var _ TextureAllocator = &Allocator{}

func validateDesc(desc device.TextureDesc) error {
	if desc.Width <= 0 || desc.Height <= 0 {
		return errors.Wrapf(memutils.ErrInvalidConfig, "texture dimensions %dx%d are invalid", desc.Width, desc.Height)
	}
	if desc.Format == device.FormatUnknown {
		return errors.Wrap(memutils.ErrInvalidConfig, "texture format is unknown")
	}
	return nil
}

// Alloc creates a new Memory for the provided descriptor. size is the number of CPU-visible bytes the
// memory represents, as reported by Memory.Size.
//
// With AllocationTextureArray, the memory is backed by the first free slice of the allocator's texture
// array, which is created on first use with desc.ArraySize slices. If no slice is free, Alloc blocks
// until one is. If the allocator is flushing, or starts flushing while Alloc waits, memutils.ErrFlushing
// is returned.
func (a *Allocator) Alloc(desc device.TextureDesc, flags AllocationFlags, size int) (*Memory, common.VkResult, error) {
	a.logger.Debug("Allocator::Alloc",
		slog.Int("Width", desc.Width),
		slog.Int("Height", desc.Height),
		slog.String("Format", desc.Format.String()),
		slog.String("Flags", flags.String()),
	)

	err := validateDesc(desc)
	if err != nil {
		return nil, core1_0.VKErrorUnknown, err
	}

	if flags&AllocationTextureArray != 0 {
		return a.allocArraySlice(desc, size)
	}

	texture, res, err := a.context.CreateTexture(desc)
	if err != nil {
		a.logger.Error("failed to create texture", slog.Any("result", res), slog.Any("error", err))
		return nil, res, errors.Mark(errors.Wrap(err, "failed to create texture"), memutils.ErrAllocationFailed)
	}

	atomic.AddInt32(&a.memoryCount, 1)
	return newMemory(a, MemoryTypeTexture, texture, desc, 0, size), res, nil
}

func (a *Allocator) allocArraySlice(desc device.TextureDesc, size int) (*Memory, common.VkResult, error) {
	if desc.ArraySize < 2 {
		return nil, core1_0.VKErrorUnknown, errors.Wrapf(memutils.ErrInvalidConfig, "texture array allocation requires an array size of at least 2, got %d", desc.ArraySize)
	}

	index, texture, res, err := a.acquireSlot(desc)
	if err != nil {
		return nil, res, err
	}

	atomic.AddInt32(&a.memoryCount, 1)
	return newMemory(a, MemoryTypeArray, texture, texture.Desc(), index, size), res, nil
}

func (a *Allocator) acquireSlot(desc device.TextureDesc) (int, *native.Texture, common.VkResult, error) {
	a.slotMutex.Lock()
	defer a.slotMutex.Unlock()

	for {
		if a.destroyed {
			return -1, nil, core1_0.VKErrorUnknown, errors.New("allocator has been destroyed")
		}

		if a.flushing {
			a.logger.Debug("Allocator::acquireSlot aborted while flushing")
			return -1, nil, core1_0.VKErrorUnknown, errors.Wrap(memutils.ErrFlushing, "texture array slot allocation aborted")
		}

		if a.arrayTexture == nil {
			res, err := a.createArrayTexture(desc)
			if err != nil {
				return -1, nil, res, err
			}
		} else {
			arrayDesc := a.arrayTexture.Desc()
			if arrayDesc.Width != desc.Width || arrayDesc.Height != desc.Height || arrayDesc.Format != desc.Format {
				return -1, nil, core1_0.VKErrorUnknown, errors.Wrapf(memutils.ErrInvalidConfig,
					"requested a %dx%d %s slice from a %dx%d %s texture array",
					desc.Width, desc.Height, desc.Format, arrayDesc.Width, arrayDesc.Height, arrayDesc.Format)
			}
		}

		index := a.slots.FirstFree()
		if index >= 0 {
			err := a.slots.Set(index)
			if err != nil {
				return -1, nil, core1_0.VKErrorUnknown, err
			}
			a.numInUse++

			return index, a.arrayTexture.AddRef(), core1_0.VKSuccess, nil
		}

		a.logger.Debug("Allocator::acquireSlot waiting for a free slot", slog.Int("ArraySize", a.slots.Len()))

		generation := a.generation
		for generation == a.generation {
			a.slotCond.Wait()
		}
	}
}

// createArrayTexture must be called with slotMutex held
func (a *Allocator) createArrayTexture(desc device.TextureDesc) (common.VkResult, error) {
	texture, res, err := a.context.CreateTexture(desc)
	if err != nil {
		a.logger.Error("failed to create texture array",
			slog.Int("ArraySize", desc.ArraySize),
			slog.Any("result", res),
			slog.Any("error", err),
		)
		return res, errors.Mark(errors.Wrap(err, "failed to create texture array"), memutils.ErrAllocationFailed)
	}

	a.arrayTexture = texture
	a.slots = memutils.NewSlotBitmap(desc.ArraySize)
	a.numInUse = 0

	if desc.BindFlags&device.BindDecoder != 0 {
		a.decoderOutputViews = swiss.NewMap[int, *native.View](uint32(desc.ArraySize))
	}
	if supportsProcessorInput(desc.BindFlags) {
		a.processorInputViews = swiss.NewMap[int, *native.View](uint32(desc.ArraySize))
	}

	return res, nil
}

// AllocStaging creates a staging Memory shaped like the provided descriptor and returns it with the row
// pitch the device uses for it. The staging texture is mapped once to learn the pitch, which may be
// larger than the unpadded row size.
func (a *Allocator) AllocStaging(desc device.TextureDesc) (mem *Memory, stride int, res common.VkResult, err error) {
	a.logger.Debug("Allocator::AllocStaging",
		slog.Int("Width", desc.Width),
		slog.Int("Height", desc.Height),
		slog.String("Format", desc.Format.String()),
	)

	err = validateDesc(desc)
	if err != nil {
		return nil, 0, core1_0.VKErrorUnknown, err
	}

	texture, res, err := a.context.CreateTexture(stagingDesc(desc))
	if err != nil {
		a.logger.Error("failed to create staging texture", slog.Any("result", res), slog.Any("error", err))
		return nil, 0, res, errors.Mark(errors.Wrap(err, "failed to create staging texture"), memutils.ErrAllocationFailed)
	}
	defer func() {
		if err != nil {
			texture.Release()
		}
	}()

	mapped, res, err := a.context.Map(texture, 0, device.MapModeRead)
	if err != nil {
		a.logger.Error("failed to map staging texture", slog.Any("result", res), slog.Any("error", err))
		return nil, 0, res, errors.Mark(errors.Wrap(err, "failed to map staging texture"), memutils.ErrAllocationFailed)
	}
	a.context.Unmap(texture, 0)

	layout, ok := format.NativeLayout(desc.Format, desc.Height, mapped.RowPitch)
	if !ok {
		return nil, 0, core1_0.VKErrorFeatureNotPresent, errors.Wrapf(memutils.ErrUnsupportedFormat, "cannot lay out %s in CPU memory", desc.Format)
	}

	atomic.AddInt32(&a.memoryCount, 1)
	return newMemory(a, MemoryTypeStaging, texture, texture.Desc(), 0, layout.Size), mapped.RowPitch, core1_0.VKSuccess, nil
}

func (a *Allocator) free(m *Memory) {
	a.logger.Debug("Allocator::free",
		slog.String("Type", m.memoryType.String()),
		slog.Int("SubresourceIndex", m.subresourceIndex),
	)

	if m.memoryType == MemoryTypeArray {
		a.releaseSlot(m.subresourceIndex)
	}

	m.releaseResources()

	newCount := atomic.AddInt32(&a.memoryCount, -1)
	if newCount < 0 {
		panic("memory count went negative")
	}

	memutils.DebugValidate(a)
}

func (a *Allocator) releaseSlot(index int) {
	a.slotMutex.Lock()
	defer a.slotMutex.Unlock()

	if a.slots != nil {
		err := a.slots.Clear(index)
		if err != nil {
			a.logger.Error("failed to release texture array slot", slog.Int("SubresourceIndex", index), slog.Any("error", err))
		} else {
			a.numInUse--
		}
	}

	a.generation++
	a.slotCond.Broadcast()
}

// SetFlushing sets whether the allocator is flushing. While flushing, texture array allocation fails
// immediately with memutils.ErrFlushing. Every thread waiting for a slot is woken whether or not the
// value changed.
func (a *Allocator) SetFlushing(flushing bool) {
	a.logger.Debug("Allocator::SetFlushing", slog.Bool("Flushing", flushing))

	a.slotMutex.Lock()
	defer a.slotMutex.Unlock()

	a.flushing = flushing
	a.generation++
	a.slotCond.Broadcast()
}

// ArraySize returns the number of slices in the allocator's texture array and how many are in use. An
// array size of 1 means the allocator has no texture array.
func (a *Allocator) ArraySize() (arraySize int, numInUse int) {
	a.slotMutex.Lock()
	defer a.slotMutex.Unlock()

	if a.slots == nil {
		return 1, 0
	}

	return a.slots.Len(), a.numInUse
}

// Destroy drops the allocator's references to its texture array and reusable views. Memory still in
// use keeps the texture array alive until it is freed. Allocations made after Destroy fail.
func (a *Allocator) Destroy() {
	a.logger.Debug("Allocator::Destroy")

	a.slotMutex.Lock()
	defer a.slotMutex.Unlock()

	if a.destroyed {
		return
	}
	a.destroyed = true

	for _, table := range []*swiss.Map[int, *native.View]{a.decoderOutputViews, a.processorInputViews} {
		if table == nil {
			continue
		}

		table.Iter(func(_ int, view *native.View) bool {
			view.Release()
			return false
		})
		table.Clear()
	}
	a.decoderOutputViews = nil
	a.processorInputViews = nil

	if a.arrayTexture != nil {
		a.arrayTexture.Release()
		a.arrayTexture = nil
	}

	a.generation++
	a.slotCond.Broadcast()
}

// Validate checks that the slot bookkeeping is consistent
func (a *Allocator) Validate() error {
	a.slotMutex.Lock()
	defer a.slotMutex.Unlock()

	if a.slots == nil {
		if a.numInUse != 0 {
			return errors.Newf("allocator has no texture array but counts %d slots in use", a.numInUse)
		}
		return nil
	}

	if count := a.slots.Count(); count != a.numInUse {
		return errors.Newf("allocator counts %d slots in use, but %d are marked", a.numInUse, count)
	}

	if a.numInUse < 0 || a.numInUse > a.slots.Len() {
		return errors.Newf("allocator counts %d slots in use of %d", a.numInUse, a.slots.Len())
	}

	return nil
}
