package native

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/vkngwrapper/vidmem/device"
)

type ViewKind int

const (
	ViewShaderResource ViewKind = iota
	ViewRenderTarget
	ViewDecoderOutput
	ViewProcessorInput
	ViewProcessorOutput
)

var viewKindToString = map[ViewKind]string{}

func init() {
	viewKindToString[ViewShaderResource] = "ShaderResource"
	viewKindToString[ViewRenderTarget] = "RenderTarget"
	viewKindToString[ViewDecoderOutput] = "DecoderOutput"
	viewKindToString[ViewProcessorInput] = "ProcessorInput"
	viewKindToString[ViewProcessorOutput] = "ProcessorOutput"
}

func (k ViewKind) String() string {
	str, ok := viewKindToString[k]
	if !ok {
		return fmt.Sprintf("ViewKind(%d)", int(k))
	}
	return str
}

// View is a reference-counted native view. Decoder output and processor input views may be shared
// between a memory object and its allocator's reusable view tables.
type View struct {
	references int32

	kind    ViewKind
	handle  device.View
	context *DeviceContext

	// Profile is the decode profile a decoder output view was created for
	Profile uuid.UUID
	// Enumerator is the processor enumerator a processor view was created against
	Enumerator device.ProcessorEnumerator
}

func (v *View) Kind() ViewKind {
	return v.kind
}

func (v *View) Handle() device.View {
	return v.handle
}

func (v *View) References() int {
	return int(atomic.LoadInt32(&v.references))
}

func (v *View) AddRef() *View {
	newCount := atomic.AddInt32(&v.references, 1)
	if newCount <= 1 {
		panic("a view was referenced after it was released")
	}
	return v
}

func (v *View) Release() {
	newCount := atomic.AddInt32(&v.references, -1)
	if newCount < 0 {
		panic("view references went negative")
	}

	if newCount == 0 {
		v.context.releaseView(v)
	}
}
