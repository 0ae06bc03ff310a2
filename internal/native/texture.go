package native

import (
	"sync/atomic"

	"github.com/vkngwrapper/vidmem/device"
)

// Texture is a reference-counted native texture. A texture array shared by many memory objects is one
// Texture with one reference per slice in use, plus one held by its allocator; the native texture is
// released with the last reference.
type Texture struct {
	references int32

	handle  device.Texture
	desc    device.TextureDesc
	context *DeviceContext
}

func (t *Texture) Handle() device.Texture {
	return t.handle
}

func (t *Texture) Desc() device.TextureDesc {
	return t.desc
}

func (t *Texture) References() int {
	return int(atomic.LoadInt32(&t.references))
}

func (t *Texture) AddRef() *Texture {
	newCount := atomic.AddInt32(&t.references, 1)
	if newCount <= 1 {
		panic("a texture was referenced after it was released")
	}
	return t
}

func (t *Texture) Release() {
	newCount := atomic.AddInt32(&t.references, -1)
	if newCount < 0 {
		panic("texture references went negative")
	}

	if newCount == 0 {
		t.context.releaseTexture(t)
	}
}
