package bufferpool

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// BuildStatsString returns the pool's state, including its allocator's statistics, as a json string
func (p *Pool) BuildStatsString() string {
	p.mutex.Lock()
	state := p.state
	started := p.started
	flushing := p.flushing
	idle := p.idle.Length()
	outstanding := p.outstanding
	p.mutex.Unlock()

	writer := jwriter.NewWriter()
	obj := writer.Object()

	obj.Name("Configured").Bool(state != nil)
	obj.Name("Started").Bool(started)
	obj.Name("Flushing").Bool(flushing)
	obj.Name("IdleBuffers").Int(idle)
	obj.Name("OutstandingBuffers").Int(outstanding)

	if state != nil {
		obj.Name("Format").String(state.params.Info.Format.String())
		obj.Name("BufferSize").Int(state.layout.Size)
		obj.Name("MinBuffers").Int(state.config.MinBuffers)
		obj.Name("MaxBuffers").Int(state.config.MaxBuffers)

		planes := obj.Name("Planes").Array()
		for i := 0; i < state.layout.Planes; i++ {
			plane := planes.Object()
			plane.Name("Offset").Int(state.layout.Offset[i])
			plane.Name("Stride").Int(state.layout.Stride[i])
			plane.End()
		}
		planes.End()

		state.allocator.PrintStats(obj.Name("Allocator"))
	}

	obj.End()
	return string(writer.Bytes())
}
