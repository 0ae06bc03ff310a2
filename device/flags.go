package device

import "github.com/vkngwrapper/core/v2/common"

// BindFlags indicate the pipeline stages a texture can be bound to
type BindFlags int32

var bindFlagsMapping = common.NewFlagStringMapping[BindFlags]()

func (f BindFlags) Register(str string) {
	bindFlagsMapping.Register(f, str)
}
func (f BindFlags) String() string {
	return bindFlagsMapping.FlagsToString(f)
}

const (
	BindShaderResource BindFlags = 1 << iota
	BindRenderTarget
	BindUnorderedAccess
	BindDecoder
	BindVideoEncoder
)

// CPUAccessFlags indicate how the CPU may access a texture
type CPUAccessFlags int32

var cpuAccessFlagsMapping = common.NewFlagStringMapping[CPUAccessFlags]()

func (f CPUAccessFlags) Register(str string) {
	cpuAccessFlagsMapping.Register(f, str)
}
func (f CPUAccessFlags) String() string {
	return cpuAccessFlagsMapping.FlagsToString(f)
}

const (
	CPUAccessRead CPUAccessFlags = 1 << iota
	CPUAccessWrite
)

// MiscFlags are miscellaneous texture creation flags
type MiscFlags int32

var miscFlagsMapping = common.NewFlagStringMapping[MiscFlags]()

func (f MiscFlags) Register(str string) {
	miscFlagsMapping.Register(f, str)
}
func (f MiscFlags) String() string {
	return miscFlagsMapping.FlagsToString(f)
}

const (
	MiscShared MiscFlags = 1 << iota
	MiscSharedKeyedMutex
)

func init() {
	BindShaderResource.Register("BindShaderResource")
	BindRenderTarget.Register("BindRenderTarget")
	BindUnorderedAccess.Register("BindUnorderedAccess")
	BindDecoder.Register("BindDecoder")
	BindVideoEncoder.Register("BindVideoEncoder")

	CPUAccessRead.Register("CPUAccessRead")
	CPUAccessWrite.Register("CPUAccessWrite")

	MiscShared.Register("MiscShared")
	MiscSharedKeyedMutex.Register("MiscSharedKeyedMutex")
}
