package vmem

import "github.com/vkngwrapper/vidmem/device"

type CreateTextureCallback func(
	allocator *Allocator,
	texture device.Texture,
	desc device.TextureDesc,
	userData interface{},
)

type ReleaseTextureCallback func(
	allocator *Allocator,
	texture device.Texture,
	desc device.TextureDesc,
	userData interface{},
)

// TextureCallbackOptions are called whenever the allocator creates or releases a native texture,
// including staging textures and the shared texture array
type TextureCallbackOptions struct {
	Create   CreateTextureCallback
	Release  ReleaseTextureCallback
	UserData interface{}
}

type textureCallbacks struct {
	Callbacks *TextureCallbackOptions
	Allocator *Allocator
}

func (c *textureCallbacks) Create(
	texture device.Texture,
	desc device.TextureDesc,
) {
	if c.Callbacks != nil && c.Callbacks.Create != nil {
		c.Callbacks.Create(c.Allocator, texture, desc, c.Callbacks.UserData)
	}
}

func (c *textureCallbacks) Release(
	texture device.Texture,
	desc device.TextureDesc,
) {
	if c.Callbacks != nil && c.Callbacks.Release != nil {
		c.Callbacks.Release(c.Allocator, texture, desc, c.Callbacks.UserData)
	}
}
