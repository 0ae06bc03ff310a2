package bufferpool

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/vidmem/memutils"
	"github.com/vkngwrapper/vidmem/vmem"
)

// Start allocates MinBuffers buffers and allows Acquire to be called
func (p *Pool) Start() error {
	p.logger.Debug("Pool::Start")

	p.mutex.Lock()
	if p.state == nil {
		p.mutex.Unlock()
		return errors.Wrap(memutils.ErrInvalidConfig, "pool must be configured before it is started")
	}
	if p.started {
		p.mutex.Unlock()
		return nil
	}
	p.started = true
	state := p.state
	p.mutex.Unlock()

	buffers := make([]*Buffer, 0, state.config.MinBuffers)
	for i := 0; i < state.config.MinBuffers; i++ {
		buf, err := p.allocBuffer(state)
		if err != nil {
			for _, allocated := range buffers {
				allocated.free()
			}
			p.mutex.Lock()
			p.started = false
			p.mutex.Unlock()
			return errors.Wrapf(err, "failed to preallocate buffer %d of %d", i+1, state.config.MinBuffers)
		}
		buffers = append(buffers, buf)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	for _, buf := range buffers {
		p.idle.Add(buf)
	}

	return nil
}

// Stop frees idle buffers. Buffers that are still acquired are freed when they are released.
func (p *Pool) Stop() {
	p.logger.Debug("Pool::Stop")

	p.mutex.Lock()
	p.started = false
	stale := p.drainIdle()
	p.mutex.Unlock()

	for _, buf := range stale {
		buf.free()
	}
}

// FlushStart makes blocked and future texture array allocations fail with memutils.ErrFlushing
func (p *Pool) FlushStart() {
	p.SetFlushing(true)
}

// FlushStop allows allocation to resume after FlushStart
func (p *Pool) FlushStop() {
	p.SetFlushing(false)
}

func (p *Pool) SetFlushing(flushing bool) {
	p.logger.Debug("Pool::SetFlushing", slog.Bool("Flushing", flushing))

	p.mutex.Lock()
	p.flushing = flushing
	var allocator *vmem.Allocator
	if p.state != nil {
		allocator = p.state.allocator
	}
	p.mutex.Unlock()

	if allocator != nil {
		allocator.SetFlushing(flushing)
	}
}

// Acquire returns an idle buffer, or allocates a new one. In texture array mode, allocation blocks while
// every array slice is in use.
func (p *Pool) Acquire() (*Buffer, error) {
	p.logger.Debug("Pool::Acquire")

	p.mutex.Lock()
	if !p.started {
		p.mutex.Unlock()
		return nil, errors.Wrap(memutils.ErrFlushing, "pool is not started")
	}
	if p.flushing {
		p.mutex.Unlock()
		return nil, errors.Wrap(memutils.ErrFlushing, "pool is flushing")
	}

	p.outstanding++
	if p.idle.Length() > 0 {
		buf := p.idle.Remove().(*Buffer)
		buf.acquired = true
		p.mutex.Unlock()
		return buf, nil
	}
	state := p.state
	p.mutex.Unlock()

	buf, err := p.allocBuffer(state)
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if err != nil {
		p.outstanding--
		return nil, err
	}

	buf.acquired = true
	return buf, nil
}

func (p *Pool) allocBuffer(state *poolState) (buf *Buffer, err error) {
	allocated := &Buffer{
		pool:       p,
		generation: state.generation,
	}
	defer func() {
		if err != nil {
			allocated.free()
		}
	}()

	params := state.params
	for i, desc := range params.Desc {
		mem, res, err := state.allocator.Alloc(desc, params.Flags, state.memorySizes[i])
		if err != nil {
			p.logger.Error("failed to allocate buffer memory", slog.Int("Index", i), slog.Any("result", res), slog.Any("error", err))
			return nil, errors.Wrapf(err, "failed to allocate memory %d of %d", i+1, len(params.Desc))
		}

		allocated.memories = append(allocated.memories, mem)
	}

	if state.config.VideoMeta {
		allocated.Meta = &VideoMeta{
			Format:  params.Info.Format,
			Width:   params.Info.Width,
			Height:  params.Info.Height,
			NPlanes: state.layout.Planes,
			Offset:  state.layout.Offset,
			Stride:  state.layout.Stride,
		}
	}

	return allocated, nil
}

func (p *Pool) releaseBuffer(buf *Buffer) {
	p.mutex.Lock()
	if !buf.acquired {
		p.mutex.Unlock()
		panic("buffer was released while it was not acquired")
	}
	buf.acquired = false

	p.outstanding--
	if p.outstanding < 0 {
		p.mutex.Unlock()
		panic("pool outstanding buffer count went negative")
	}

	keep := p.started &&
		p.state != nil &&
		buf.generation == p.state.generation &&
		(p.state.config.MaxBuffers == 0 || p.idle.Length() < p.state.config.MaxBuffers)
	if keep {
		p.idle.Add(buf)
		p.mutex.Unlock()
		return
	}
	p.mutex.Unlock()

	buf.free()
}
