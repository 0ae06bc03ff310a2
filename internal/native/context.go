package native

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/format"
	"github.com/vkngwrapper/vidmem/internal/utils"
	"github.com/vkngwrapper/vidmem/memutils"
)

type TextureCallbacks interface {
	Create(texture device.Texture, desc device.TextureDesc)
	Release(texture device.Texture, desc device.TextureDesc)
}

// DeviceContext wraps a device.Device. Every call against the immediate context is made while holding
// the device lock, and only for the duration of that call. It also keeps a count of the native objects
// that are alive.
type DeviceContext struct {
	// Number of live textures, including staging textures
	textureCount int32
	// Number of live textures with staging usage
	stagingCount int32
	// Number of live views of any kind
	viewCount int32
	// Number of subresources currently mapped
	mapCount int32
	// Unpadded size of live textures
	textureBytes int64

	callbacks TextureCallbacks
	device    device.Device
}

func NewDeviceContext(callbacks TextureCallbacks, dev device.Device) (*DeviceContext, error) {
	if dev == nil {
		return nil, errors.Wrap(memutils.ErrInvalidConfig, "a device is required")
	}

	return &DeviceContext{
		callbacks: callbacks,
		device:    dev,
	}, nil
}

func (c *DeviceContext) Device() device.Device {
	return c.device
}

func textureBytes(desc device.TextureDesc) int64 {
	layout, ok := format.NativeLayout(desc.Format, desc.Height, desc.Format.RowBytes(desc.Width))
	if !ok {
		return 0
	}
	return int64(layout.Size) * int64(desc.ArraySize)
}

// CreateTexture creates a native texture and returns it with a single reference
func (c *DeviceContext) CreateTexture(desc device.TextureDesc) (texture *Texture, res common.VkResult, err error) {
	atomic.AddInt32(&c.textureCount, 1)
	defer func() {
		// If we failed out, roll back the count
		if err != nil {
			atomic.AddInt32(&c.textureCount, -1)
		}
	}()

	handle, res, err := c.device.CreateTexture(desc)
	if err != nil {
		return nil, res, err
	}
	if handle == nil {
		return nil, core1_0.VKErrorUnknown, errors.New("device returned a nil texture without reporting an error")
	}

	if desc.Usage == device.UsageStaging {
		atomic.AddInt32(&c.stagingCount, 1)
	}
	atomic.AddInt64(&c.textureBytes, textureBytes(desc))

	if c.callbacks != nil {
		c.callbacks.Create(handle, desc)
	}

	return &Texture{
		references: 1,
		handle:     handle,
		desc:       desc,
		context:    c,
	}, res, nil
}

func (c *DeviceContext) releaseTexture(texture *Texture) {
	if c.callbacks != nil {
		c.callbacks.Release(texture.handle, texture.desc)
	}

	texture.handle.Release()

	if texture.desc.Usage == device.UsageStaging {
		newCount := atomic.AddInt32(&c.stagingCount, -1)
		if newCount < 0 {
			panic("staging texture count went negative")
		}
	}

	newBytes := atomic.AddInt64(&c.textureBytes, -textureBytes(texture.desc))
	if newBytes < 0 {
		panic(fmt.Sprintf("texture bytes went negative after releasing a %dx%d %s texture", texture.desc.Width, texture.desc.Height, texture.desc.Format))
	}

	newCount := atomic.AddInt32(&c.textureCount, -1)
	if newCount < 0 {
		panic("texture count went negative")
	}
}

// CreateView calls create to build a native view and returns it with a single reference
func (c *DeviceContext) CreateView(kind ViewKind, create func(dev device.Device) (device.View, common.VkResult, error)) (view *View, res common.VkResult, err error) {
	atomic.AddInt32(&c.viewCount, 1)
	defer func() {
		if err != nil {
			atomic.AddInt32(&c.viewCount, -1)
		}
	}()

	handle, res, err := create(c.device)
	if err != nil {
		return nil, res, err
	}
	if handle == nil {
		return nil, core1_0.VKErrorUnknown, errors.Newf("device returned a nil %s view without reporting an error", kind)
	}

	return &View{
		references: 1,
		kind:       kind,
		handle:     handle,
		context:    c,
	}, res, nil
}

func (c *DeviceContext) releaseView(view *View) {
	view.handle.Release()

	newCount := atomic.AddInt32(&c.viewCount, -1)
	if newCount < 0 {
		panic("view count went negative")
	}
}

func (c *DeviceContext) Map(texture *Texture, subresource int, mode device.MapMode) (mapped device.MappedSubresource, res common.VkResult, err error) {
	utils.WithLock(c.device, func() {
		mapped, res, err = c.device.Map(texture.handle, subresource, mode)
	})
	if err != nil {
		return device.MappedSubresource{}, res, err
	}

	atomic.AddInt32(&c.mapCount, 1)
	return mapped, res, nil
}

func (c *DeviceContext) Unmap(texture *Texture, subresource int) {
	utils.WithLock(c.device, func() {
		c.device.Unmap(texture.handle, subresource)
	})

	newCount := atomic.AddInt32(&c.mapCount, -1)
	if newCount < 0 {
		panic("mapped subresource count went negative")
	}
}

func (c *DeviceContext) CopySubresourceRegion(dst *Texture, dstSubresource int, src *Texture, srcSubresource int) {
	utils.WithLock(c.device, func() {
		c.device.CopySubresourceRegion(dst.handle, dstSubresource, src.handle, srcSubresource)
	})
}

// MappedCount returns the number of subresources currently mapped through this context
func (c *DeviceContext) MappedCount() int {
	return int(atomic.LoadInt32(&c.mapCount))
}

// AddStatistics adds the live object counts of this context to stats
func (c *DeviceContext) AddStatistics(stats *memutils.Statistics) {
	stats.TextureCount += int(atomic.LoadInt32(&c.textureCount))
	stats.StagingCount += int(atomic.LoadInt32(&c.stagingCount))
	stats.ViewCount += int(atomic.LoadInt32(&c.viewCount))
	stats.TextureBytes += int(atomic.LoadInt64(&c.textureBytes))
}
