package vmem

import (
	"sync/atomic"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/vidmem/memutils"
)

// CalculateStatistics fills stats with the allocator's current state
func (a *Allocator) CalculateStatistics(stats *memutils.SlotStatistics) {
	stats.Clear()

	a.context.AddStatistics(&stats.Statistics)
	stats.MemoryObjectCount = int(atomic.LoadInt32(&a.memoryCount))

	a.slotMutex.Lock()
	defer a.slotMutex.Unlock()

	if a.slots != nil {
		stats.ArraySize = a.slots.Len()
		stats.SlotsInUse = a.numInUse
	}
	stats.Generation = a.generation
	stats.Flushing = a.flushing
}

// PrintStats writes the allocator's statistics to writer as a json object
func (a *Allocator) PrintStats(writer *jwriter.Writer) {
	var stats memutils.SlotStatistics
	a.CalculateStatistics(&stats)

	obj := writer.Object()
	defer obj.End()

	obj.Name("ArraySize").Int(stats.ArraySize)
	obj.Name("SlotsInUse").Int(stats.SlotsInUse)
	obj.Name("FreeSlots").Int(stats.FreeSlots())
	obj.Name("Flushing").Bool(stats.Flushing)
	obj.Name("Generation").Int(int(stats.Generation))
	obj.Name("MemoryObjects").Int(stats.MemoryObjectCount)
	obj.Name("MappedSubresources").Int(a.context.MappedCount())

	native := obj.Name("Native").Object()
	native.Name("Textures").Int(stats.TextureCount)
	native.Name("StagingTextures").Int(stats.StagingCount)
	native.Name("Views").Int(stats.ViewCount)
	native.Name("TextureBytes").Int(stats.TextureBytes)
	native.End()
}

// BuildStatsString returns the allocator's statistics as a json string
func (a *Allocator) BuildStatsString() string {
	writer := jwriter.NewWriter()
	a.PrintStats(&writer)
	return string(writer.Bytes())
}
