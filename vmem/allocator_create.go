package vmem

import (
	"log/slog"
	"sync"

	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/internal/native"
	"github.com/vkngwrapper/vidmem/internal/utils"
)

// CreateFlags indicate specific allocator behaviors to activate or deactivate
type CreateFlags int32

var allocatorCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	allocatorCreateFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return allocatorCreateFlagsMapping.FlagsToString(f)
}

const (
	// AllocatorCreateExternallySynchronized turns off the per-memory mutexes that guard map state and
	// view caches. The consumer must guarantee that each Memory is used from one thread at a time.
	// Texture array slot allocation is always synchronized, because waiting for a free slot requires it.
	AllocatorCreateExternallySynchronized CreateFlags = 1 << iota
)

func init() {
	AllocatorCreateExternallySynchronized.Register("AllocatorCreateExternallySynchronized")
}

// CreateOptions contains optional settings when creating an allocator
type CreateOptions struct {
	// Flags indicates specific allocator behaviors to activate or deactivate
	Flags CreateFlags

	// TextureCallbackOptions is an optional set of callbacks that will be executed when native textures
	// are created or released by this allocator
	TextureCallbackOptions *TextureCallbackOptions
}

// New creates a new Allocator
//
// dev - The Device that textures will be created on
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, dev device.Device, options CreateOptions) (*Allocator, error) {
	useMutex := options.Flags&AllocatorCreateExternallySynchronized == 0

	allocator := &Allocator{
		useMutex:    useMutex,
		logger:      utils.LoggerOrDiscard(logger),
		createFlags: options.Flags,
	}
	allocator.slotCond = sync.NewCond(&allocator.slotMutex)

	var err error
	allocator.context, err = native.NewDeviceContext(
		&textureCallbacks{
			Callbacks: options.TextureCallbackOptions,
			Allocator: allocator,
		},
		dev,
	)
	if err != nil {
		return nil, err
	}

	allocator.logger.Debug("Allocator::New", slog.String("Flags", options.Flags.String()))

	return allocator, nil
}
