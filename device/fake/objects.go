package fake

import (
	"github.com/vkngwrapper/vidmem/device"
)

// Texture is a byte-backed texture created by a fake Device
type Texture struct {
	device       *Device
	id           uint64
	desc         device.TextureDesc
	rowPitch     int
	subresources [][]byte
	mapped       []bool
}

func (t *Texture) Desc() device.TextureDesc {
	return t.desc
}

func (t *Texture) Release() {
	t.device.unregister(t.id)
}

// RowPitch returns the pitch the texture's rows are padded to
func (t *Texture) RowPitch() int {
	return t.rowPitch
}

// Subresource returns the backing bytes of one array slice, so tests can inspect GPU-side contents
func (t *Texture) Subresource(index int) []byte {
	return t.subresources[index]
}

// View is a view created by a fake Device
type View struct {
	device *Device
	id     uint64

	Kind    string
	Texture *Texture
	Desc    any
}

func (v *View) Release() {
	v.device.unregister(v.id)
}

// Enumerator is a stand-in for a native video processor enumerator
type Enumerator struct {
	Name string
}

func (e *Enumerator) Release() {}
