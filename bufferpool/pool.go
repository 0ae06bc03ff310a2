package bufferpool

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/eapache/queue"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/format"
	"github.com/vkngwrapper/vidmem/internal/utils"
	"github.com/vkngwrapper/vidmem/memutils"
	"github.com/vkngwrapper/vidmem/vmem"
)

// poolState is everything learned by Configure. It is immutable once built, and replaced wholesale by
// the next Configure.
type poolState struct {
	generation uint64
	config     Config

	allocator     *vmem.Allocator
	ownsAllocator bool
	params        *vmem.AllocationParams

	// layout is the CPU layout of a whole buffer, discovered from staging textures
	layout format.Layout
	// memorySizes is the CPU size of each memory in a buffer
	memorySizes [format.MaxPlanes]int
}

// Pool produces frame buffers backed by GPU textures. It is configured once per negotiated format,
// then started, after which buffers can be acquired concurrently from any thread.
type Pool struct {
	logger *slog.Logger
	device device.Device
	table  format.Table

	mutex       sync.Mutex
	generation  uint64
	state       *poolState
	started     bool
	flushing    bool
	idle        *queue.Queue
	outstanding int
}

// New creates an unconfigured Pool. If table is nil, format.DefaultTable is used.
func New(logger *slog.Logger, dev device.Device, table format.Table) *Pool {
	if table == nil {
		table = format.DefaultTable()
	}

	return &Pool{
		logger: utils.LoggerOrDiscard(logger),
		device: dev,
		table:  table,
		idle:   queue.New(),
	}
}

func (p *Pool) resolveAllocator(allocator vmem.TextureAllocator) (*vmem.Allocator, bool, error) {
	switch typed := allocator.(type) {
	case nil:
		created, err := vmem.New(p.logger, p.device, vmem.CreateOptions{})
		if err != nil {
			return nil, false, err
		}
		return created, true, nil
	case *vmem.Allocator:
		return typed, false, nil
	}

	return nil, false, errors.Wrapf(memutils.ErrWrongAllocator, "pool requires a *vmem.Allocator, got %T", allocator)
}

func (p *Pool) resolveParams(cfg Config) (*vmem.AllocationParams, error) {
	if cfg.Params == nil {
		return vmem.NewAllocationParams(p.table, *cfg.Info, 0, device.BindShaderResource)
	}

	if cfg.Params.Info.Format != cfg.Info.Format {
		return nil, errors.Wrapf(memutils.ErrInvalidConfig, "allocation params describe %s frames, but the pool is configured for %s", cfg.Params.Info.Format, cfg.Info.Format)
	}

	return cfg.Params.Copy(), nil
}

// Configure validates cfg and learns the CPU layout of buffers by allocating a staging texture for each
// memory in a buffer. The returned Config has MaxBuffers clamped for texture arrays, BufferSize filled in,
// and the resolved Allocator and Params set. A Pool cannot be configured while it is started. If the
// resolved params and allocator match the current configuration, the allocator and layout are kept and
// buffers still outstanding are recycled once the pool is started again.
func (p *Pool) Configure(cfg Config) (configured Config, err error) {
	p.logger.Debug("Pool::Configure", slog.Int("MinBuffers", cfg.MinBuffers), slog.Int("MaxBuffers", cfg.MaxBuffers))

	if cfg.Info == nil {
		return Config{}, errors.Wrap(memutils.ErrInvalidConfig, "pool configuration has no video info")
	}
	err = cfg.Info.Validate()
	if err != nil {
		return Config{}, err
	}
	if cfg.MinBuffers < 0 || cfg.MaxBuffers < 0 || (cfg.MaxBuffers != 0 && cfg.MinBuffers > cfg.MaxBuffers) {
		return Config{}, errors.Wrapf(memutils.ErrInvalidConfig, "invalid buffer count range [%d, %d]", cfg.MinBuffers, cfg.MaxBuffers)
	}

	p.mutex.Lock()
	started := p.started
	previous := p.state
	p.mutex.Unlock()
	if started {
		return Config{}, errors.Wrap(memutils.ErrInvalidConfig, "pool cannot be configured while it is started")
	}

	params, err := p.resolveParams(cfg)
	if err != nil {
		return Config{}, err
	}

	if extra, ok := vmem.EvenDimensionAlignment(params.Format, params.AlignedInfo); ok {
		p.logger.Warn("frame dimensions must be even, padding the frame",
			slog.String("Format", params.Info.Format.String()),
			slog.Int("Width", params.AlignedInfo.Width),
			slog.Int("Height", params.AlignedInfo.Height),
		)
		align := params.Padding
		align.PaddingRight += extra.PaddingRight
		align.PaddingBottom += extra.PaddingBottom
		err = params.Align(align)
		if err != nil {
			return Config{}, err
		}
	}

	if params.Flags&vmem.AllocationTextureArray != 0 {
		if len(params.Desc) > 1 {
			return Config{}, errors.Wrapf(memutils.ErrInvalidConfig, "%s frames use %d textures and cannot be allocated from a texture array", params.Info.Format, len(params.Desc))
		}

		arraySize := params.Desc[0].ArraySize
		if cfg.MaxBuffers == 0 || cfg.MaxBuffers > arraySize {
			p.logger.Info("clamping max buffers to the texture array size",
				slog.Int("MaxBuffers", cfg.MaxBuffers),
				slog.Int("ArraySize", arraySize),
			)
			cfg.MaxBuffers = arraySize
		}
		if cfg.MinBuffers > cfg.MaxBuffers {
			p.logger.Warn("clamping min buffers to the texture array size", slog.Int("MinBuffers", cfg.MinBuffers))
			cfg.MinBuffers = cfg.MaxBuffers
		}
	}

	if p.reusable(previous, cfg.Allocator, params) {
		return p.reconfigure(previous, cfg, params), nil
	}

	allocator, ownsAllocator, err := p.resolveAllocator(cfg.Allocator)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		if err != nil && ownsAllocator {
			allocator.Destroy()
		}
	}()

	state := &poolState{
		allocator:     allocator,
		ownsAllocator: ownsAllocator,
		params:        params,
	}
	err = p.probeLayout(state)
	if err != nil {
		return Config{}, err
	}

	cfg.Allocator = allocator
	cfg.Params = params
	cfg.BufferSize = state.layout.Size
	state.config = cfg

	p.mutex.Lock()
	previous = p.state
	p.generation++
	state.generation = p.generation
	p.state = state
	stale := p.drainIdle()
	p.mutex.Unlock()

	for _, buf := range stale {
		buf.free()
	}
	if previous != nil && previous.ownsAllocator && previous.allocator != allocator {
		previous.allocator.Destroy()
	}

	return cfg, nil
}

// reusable returns true if previous already allocates the textures params describe, from the allocator
// the caller asked for
func (p *Pool) reusable(previous *poolState, requested vmem.TextureAllocator, params *vmem.AllocationParams) bool {
	if previous == nil || !previous.params.Equal(params) {
		return false
	}

	if requested == nil {
		return previous.ownsAllocator
	}
	allocator, ok := requested.(*vmem.Allocator)
	return ok && allocator == previous.allocator
}

// reconfigure replaces the buffer counts of previous, keeping its allocator, layout, and generation
func (p *Pool) reconfigure(previous *poolState, cfg Config, params *vmem.AllocationParams) Config {
	p.logger.Debug("Pool::reconfigure", slog.Uint64("Generation", previous.generation))

	cfg.Allocator = previous.allocator
	cfg.Params = params
	cfg.BufferSize = previous.layout.Size

	state := *previous
	state.config = cfg
	state.params = params

	p.mutex.Lock()
	p.state = &state
	p.mutex.Unlock()

	return cfg
}

// probeLayout allocates a staging texture for each memory of a buffer to learn the row pitch the device
// uses, then derives the offset, stride and size of every plane from it
func (p *Pool) probeLayout(state *poolState) error {
	params := state.params
	layout := &state.layout
	layout.Planes = params.Format.NPlanes()

	if params.Format.Native == device.FormatUnknown {
		for i, desc := range params.Desc {
			mem, stride, _, err := state.allocator.AllocStaging(desc)
			if err != nil {
				return errors.Wrapf(err, "failed to allocate staging texture for plane %d", i)
			}

			layout.Stride[i] = stride
			state.memorySizes[i] = mem.Size()
			if i > 0 {
				layout.Offset[i] = layout.Offset[i-1] + state.memorySizes[i-1]
			}
			layout.Size += mem.Size()

			mem.Release()
		}

		return nil
	}

	mem, stride, _, err := state.allocator.AllocStaging(params.Desc[0])
	if err != nil {
		return errors.Wrap(err, "failed to allocate staging texture")
	}
	defer mem.Release()

	layout.Stride[0] = stride
	state.memorySizes[0] = mem.Size()
	layout.Size = mem.Size()

	if layout.Planes == 2 {
		layout.Stride[1] = stride
		layout.Offset[1] = stride * params.Desc[0].Height
	}

	return nil
}

// Config returns the configuration produced by the last successful Configure
func (p *Pool) Config() (Config, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.state == nil {
		return Config{}, false
	}
	return p.state.config, true
}

// Layout returns the CPU layout of the pool's buffers
func (p *Pool) Layout() (format.Layout, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.state == nil {
		return format.Layout{}, false
	}
	return p.state.layout, true
}

// drainIdle must be called with mutex held
func (p *Pool) drainIdle() []*Buffer {
	buffers := make([]*Buffer, 0, p.idle.Length())
	for p.idle.Length() > 0 {
		buffers = append(buffers, p.idle.Remove().(*Buffer))
	}
	return buffers
}

// Destroy stops the pool and destroys the allocator if the pool created it
func (p *Pool) Destroy() {
	p.logger.Debug("Pool::Destroy")

	p.Stop()

	p.mutex.Lock()
	state := p.state
	p.state = nil
	p.mutex.Unlock()

	if state != nil && state.ownsAllocator {
		state.allocator.Destroy()
	}
}
