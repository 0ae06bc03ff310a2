package vmem

import (
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/vidmem/internal/native"
)

// viewTable must be called with slotMutex held
func (a *Allocator) viewTable(kind native.ViewKind) *swiss.Map[int, *native.View] {
	switch kind {
	case native.ViewDecoderOutput:
		return a.decoderOutputViews
	case native.ViewProcessorInput:
		return a.processorInputViews
	}

	return nil
}

// reusableView returns a new reference to the view kept for the provided slice, if it matches. A kept
// view that does not match is dropped.
func (a *Allocator) reusableView(kind native.ViewKind, index int, matches func(view *native.View) bool) *native.View {
	a.slotMutex.Lock()
	defer a.slotMutex.Unlock()

	table := a.viewTable(kind)
	if table == nil {
		return nil
	}

	view, ok := table.Get(index)
	if !ok {
		return nil
	}

	if matches(view) {
		return view.AddRef()
	}

	table.Delete(index)
	view.Release()
	return nil
}

// storeReusableView keeps a reference to view for the next memory that gets the provided slice
func (a *Allocator) storeReusableView(kind native.ViewKind, index int, view *native.View) {
	a.slotMutex.Lock()
	defer a.slotMutex.Unlock()

	table := a.viewTable(kind)
	if table == nil {
		return
	}

	if old, ok := table.Get(index); ok {
		old.Release()
	}
	table.Put(index, view.AddRef())
}
