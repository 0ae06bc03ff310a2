// Package fake provides a software implementation of device.Device. Textures are backed by byte slices,
// rows are padded to a configurable pitch alignment the way hardware pads them, and every live native
// object is tracked so tests can check that nothing leaks.
package fake

import (
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/format"
	"github.com/vkngwrapper/vidmem/memutils"
)

const defaultPitchAlignment uint = 256

type objectKind int

const (
	kindTexture objectKind = iota
	kindView
)

// Options control the behavior of a fake Device
type Options struct {
	// PitchAlignment is the power of two that mapped row pitches are aligned to. Defaults to 256.
	PitchAlignment uint
	// FailCreateTexture, if set, is consulted before each texture creation. A non-nil error fails the call.
	FailCreateTexture func(desc device.TextureDesc) error
	// FailCreateView, if set, is consulted before each view creation. A non-nil error fails the call.
	FailCreateView func(kind string) error
	// FailMap, if set, is consulted before each map. A non-nil error fails the call.
	FailMap func(texture device.Texture, subresource int) error
}

// Device is an in-memory device.Device
type Device struct {
	options Options

	registryMutex sync.Mutex
	live          *swiss.Map[uint64, objectKind]
	nextID        uint64

	contextMutex sync.Mutex
	contextHeld  atomic.Bool

	texturesCreated atomic.Int64
	viewsCreated    atomic.Int64
	maps            atomic.Int64
	unmaps          atomic.Int64
	copies          atomic.Int64
}

var _ device.Device = &Device{}

// New creates a fake Device
func New(options Options) (*Device, error) {
	if options.PitchAlignment == 0 {
		options.PitchAlignment = defaultPitchAlignment
	}
	err := memutils.CheckPow2(options.PitchAlignment, "fake device pitch alignment")
	if err != nil {
		return nil, err
	}

	return &Device{
		options: options,
		live:    swiss.NewMap[uint64, objectKind](42),
	}, nil
}

func (d *Device) register(kind objectKind) uint64 {
	d.registryMutex.Lock()
	defer d.registryMutex.Unlock()

	d.nextID++
	d.live.Put(d.nextID, kind)
	return d.nextID
}

func (d *Device) unregister(id uint64) {
	d.registryMutex.Lock()
	defer d.registryMutex.Unlock()

	if !d.live.Delete(id) {
		panic(errors.Newf("native object %d was released more than once", id))
	}
}

func (d *Device) countLive(kind objectKind) int {
	d.registryMutex.Lock()
	defer d.registryMutex.Unlock()

	count := 0
	d.live.Iter(func(_ uint64, liveKind objectKind) bool {
		if liveKind == kind {
			count++
		}
		return false
	})
	return count
}

// LiveTextures returns the number of textures that have been created and not released
func (d *Device) LiveTextures() int { return d.countLive(kindTexture) }

// LiveViews returns the number of views that have been created and not released
func (d *Device) LiveViews() int { return d.countLive(kindView) }

// TexturesCreated returns the number of textures ever created
func (d *Device) TexturesCreated() int { return int(d.texturesCreated.Load()) }

// ViewsCreated returns the number of views ever created
func (d *Device) ViewsCreated() int { return int(d.viewsCreated.Load()) }

// MapCount returns the number of successful Map calls
func (d *Device) MapCount() int { return int(d.maps.Load()) }

// UnmapCount returns the number of Unmap calls
func (d *Device) UnmapCount() int { return int(d.unmaps.Load()) }

// CopyCount returns the number of CopySubresourceRegion calls
func (d *Device) CopyCount() int { return int(d.copies.Load()) }

func (d *Device) Lock() {
	d.contextMutex.Lock()
	d.contextHeld.Store(true)
}

func (d *Device) Unlock() {
	d.contextHeld.Store(false)
	d.contextMutex.Unlock()
}

func (d *Device) checkContext(call string) {
	if !d.contextHeld.Load() {
		panic(errors.Newf("%s was called on the immediate context without holding the device lock", call))
	}
}

func (d *Device) rowPitch(desc device.TextureDesc) int {
	return memutils.AlignUp(desc.Format.RowBytes(desc.Width), d.options.PitchAlignment)
}

func (d *Device) CreateTexture(desc device.TextureDesc) (device.Texture, common.VkResult, error) {
	if d.options.FailCreateTexture != nil {
		if err := d.options.FailCreateTexture(desc); err != nil {
			return nil, core1_0.VKErrorOutOfDeviceMemory, err
		}
	}

	if desc.Width <= 0 || desc.Height <= 0 || desc.MipLevels != 1 || desc.ArraySize < 1 {
		return nil, core1_0.VKErrorFeatureNotPresent, errors.Newf("unsupported texture geometry %dx%d, %d mips, %d slices", desc.Width, desc.Height, desc.MipLevels, desc.ArraySize)
	}
	if desc.Format.IsSemiPlanar() && (desc.Width%2 != 0 || desc.Height%2 != 0) {
		return nil, core1_0.VKErrorFeatureNotPresent, errors.Newf("%s textures must have even dimensions, got %dx%d", desc.Format, desc.Width, desc.Height)
	}

	pitch := d.rowPitch(desc)
	layout, ok := format.NativeLayout(desc.Format, desc.Height, pitch)
	if !ok {
		return nil, core1_0.VKErrorFeatureNotPresent, errors.Newf("unsupported texture format %s", desc.Format)
	}

	texture := &Texture{
		device:       d,
		desc:         desc,
		rowPitch:     pitch,
		subresources: make([][]byte, desc.ArraySize),
		mapped:       make([]bool, desc.ArraySize),
	}
	for i := range texture.subresources {
		texture.subresources[i] = make([]byte, layout.Size)
	}
	texture.id = d.register(kindTexture)
	d.texturesCreated.Add(1)

	return texture, core1_0.VKSuccess, nil
}

func (d *Device) createView(kind string, texture device.Texture, required device.BindFlags, desc any) (device.View, common.VkResult, error) {
	if d.options.FailCreateView != nil {
		if err := d.options.FailCreateView(kind); err != nil {
			return nil, core1_0.VKErrorOutOfDeviceMemory, err
		}
	}

	fakeTexture, ok := texture.(*Texture)
	if !ok {
		return nil, core1_0.VKErrorUnknown, errors.Newf("%s view requested for a texture that did not come from this device", kind)
	}
	if required != 0 && fakeTexture.desc.BindFlags&required == 0 {
		return nil, core1_0.VKErrorFeatureNotPresent, errors.Newf("%s view requires %s, but the texture was created with %s", kind, required, fakeTexture.desc.BindFlags)
	}

	view := &View{
		device:  d,
		Kind:    kind,
		Texture: fakeTexture,
		Desc:    desc,
	}
	view.id = d.register(kindView)
	d.viewsCreated.Add(1)

	return view, core1_0.VKSuccess, nil
}

func (d *Device) CreateShaderResourceView(texture device.Texture, desc device.ShaderResourceViewDesc) (device.View, common.VkResult, error) {
	return d.createView("shader resource", texture, device.BindShaderResource, desc)
}

func (d *Device) CreateRenderTargetView(texture device.Texture, desc device.RenderTargetViewDesc) (device.View, common.VkResult, error) {
	return d.createView("render target", texture, device.BindRenderTarget, desc)
}

func (d *Device) CreateDecoderOutputView(texture device.Texture, desc device.DecoderOutputViewDesc) (device.View, common.VkResult, error) {
	return d.createView("decoder output", texture, device.BindDecoder, desc)
}

func (d *Device) CreateProcessorInputView(texture device.Texture, enumerator device.ProcessorEnumerator, desc device.ProcessorInputViewDesc) (device.View, common.VkResult, error) {
	if enumerator == nil {
		return nil, core1_0.VKErrorUnknown, errors.New("processor input view requires an enumerator")
	}
	return d.createView("processor input", texture, 0, desc)
}

func (d *Device) CreateProcessorOutputView(texture device.Texture, enumerator device.ProcessorEnumerator, desc device.ProcessorOutputViewDesc) (device.View, common.VkResult, error) {
	if enumerator == nil {
		return nil, core1_0.VKErrorUnknown, errors.New("processor output view requires an enumerator")
	}
	return d.createView("processor output", texture, device.BindRenderTarget, desc)
}

func (d *Device) Map(texture device.Texture, subresource int, mode device.MapMode) (device.MappedSubresource, common.VkResult, error) {
	d.checkContext("Map")

	if d.options.FailMap != nil {
		if err := d.options.FailMap(texture, subresource); err != nil {
			return device.MappedSubresource{}, core1_0.VKErrorMemoryMapFailed, err
		}
	}

	fakeTexture := texture.(*Texture)
	if fakeTexture.desc.Usage != device.UsageStaging && fakeTexture.desc.Usage != device.UsageDynamic {
		return device.MappedSubresource{}, core1_0.VKErrorMemoryMapFailed, errors.Newf("cannot map a texture with %s", fakeTexture.desc.Usage)
	}
	if subresource < 0 || subresource >= len(fakeTexture.subresources) {
		return device.MappedSubresource{}, core1_0.VKErrorMemoryMapFailed, errors.Newf("subresource %d is out of range", subresource)
	}
	if fakeTexture.mapped[subresource] {
		return device.MappedSubresource{}, core1_0.VKErrorMemoryMapFailed, errors.Newf("subresource %d is already mapped", subresource)
	}

	fakeTexture.mapped[subresource] = true
	d.maps.Add(1)

	data := fakeTexture.subresources[subresource]
	return device.MappedSubresource{
		Data:       data,
		RowPitch:   fakeTexture.rowPitch,
		DepthPitch: len(data),
	}, core1_0.VKSuccess, nil
}

func (d *Device) Unmap(texture device.Texture, subresource int) {
	d.checkContext("Unmap")

	fakeTexture := texture.(*Texture)
	if !fakeTexture.mapped[subresource] {
		panic(errors.Newf("subresource %d was unmapped without being mapped", subresource))
	}

	fakeTexture.mapped[subresource] = false
	d.unmaps.Add(1)
}

func (d *Device) CopySubresourceRegion(dst device.Texture, dstSubresource int, src device.Texture, srcSubresource int) {
	d.checkContext("CopySubresourceRegion")

	dstTexture := dst.(*Texture)
	srcTexture := src.(*Texture)

	dstData := dstTexture.subresources[dstSubresource]
	srcData := srcTexture.subresources[srcSubresource]

	if dstTexture.rowPitch == srcTexture.rowPitch {
		copy(dstData, srcData)
	} else {
		rowBytes := dstTexture.desc.Format.RowBytes(dstTexture.desc.Width)
		rows := len(srcData) / srcTexture.rowPitch
		for row := 0; row < rows && (row+1)*dstTexture.rowPitch <= len(dstData); row++ {
			copy(dstData[row*dstTexture.rowPitch:row*dstTexture.rowPitch+rowBytes], srcData[row*srcTexture.rowPitch:])
		}
	}

	d.copies.Add(1)
}
