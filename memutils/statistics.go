package memutils

// Statistics counts the native objects created through an allocator
type Statistics struct {
	TextureCount      int
	StagingCount      int
	ViewCount         int
	MemoryObjectCount int
	TextureBytes      int
}

func (s *Statistics) Clear() {
	s.TextureCount = 0
	s.StagingCount = 0
	s.ViewCount = 0
	s.MemoryObjectCount = 0
	s.TextureBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.TextureCount += other.TextureCount
	s.StagingCount += other.StagingCount
	s.ViewCount += other.ViewCount
	s.MemoryObjectCount += other.MemoryObjectCount
	s.TextureBytes += other.TextureBytes
}

// SlotStatistics describes the state of an array allocator's slots
type SlotStatistics struct {
	Statistics
	ArraySize  int
	SlotsInUse int
	// Generation is incremented every time slot waiters are woken
	Generation uint64
	Flushing   bool
}

func (s *SlotStatistics) Clear() {
	s.Statistics.Clear()
	s.ArraySize = 1
	s.SlotsInUse = 0
	s.Generation = 0
	s.Flushing = false
}

// FreeSlots returns the number of slots that can be handed out without waiting
func (s *SlotStatistics) FreeSlots() int {
	if s.ArraySize <= 1 {
		return 0
	}
	return s.ArraySize - s.SlotsInUse
}
