package device

import (
	"fmt"

	"github.com/google/uuid"
)

// Usage identifies how a texture is expected to be read and written
type Usage int32

const (
	UsageDefault Usage = iota
	UsageImmutable
	UsageDynamic
	UsageStaging
)

var usageToString = map[Usage]string{
	UsageDefault:   "UsageDefault",
	UsageImmutable: "UsageImmutable",
	UsageDynamic:   "UsageDynamic",
	UsageStaging:   "UsageStaging",
}

func (u Usage) String() string {
	str, ok := usageToString[u]
	if !ok {
		return fmt.Sprintf("Usage(%d)", int32(u))
	}
	return str
}

// MapMode is the access mode passed to Device.Map
type MapMode int32

const (
	MapModeRead MapMode = iota + 1
	MapModeWrite
	MapModeReadWrite
)

var mapModeToString = map[MapMode]string{
	MapModeRead:      "MapModeRead",
	MapModeWrite:     "MapModeWrite",
	MapModeReadWrite: "MapModeReadWrite",
}

func (m MapMode) String() string {
	str, ok := mapModeToString[m]
	if !ok {
		return fmt.Sprintf("MapMode(%d)", int32(m))
	}
	return str
}

// ViewDimension identifies whether a view addresses a plain texture or a range of array slices
type ViewDimension int32

const (
	ViewDimensionTexture2D ViewDimension = iota
	ViewDimensionTexture2DArray
)

type SampleDesc struct {
	Count   int
	Quality int
}

// TextureDesc describes a native 2D texture
type TextureDesc struct {
	Width          int
	Height         int
	MipLevels      int
	ArraySize      int
	Format         Format
	SampleDesc     SampleDesc
	Usage          Usage
	BindFlags      BindFlags
	CPUAccessFlags CPUAccessFlags
	MiscFlags      MiscFlags
}

// MappedSubresource is the CPU view of a mapped subresource. RowPitch may be larger than the row size
// implied by the texture width.
type MappedSubresource struct {
	Data       []byte
	RowPitch   int
	DepthPitch int
}

type ShaderResourceViewDesc struct {
	Format          Format
	Dimension       ViewDimension
	MostDetailedMip int
	MipLevels       int
	FirstArraySlice int
	ArraySize       int
}

type RenderTargetViewDesc struct {
	Format          Format
	Dimension       ViewDimension
	MipSlice        int
	FirstArraySlice int
	ArraySize       int
}

type DecoderOutputViewDesc struct {
	DecodeProfile uuid.UUID
	ArraySlice    int
}

type ProcessorInputViewDesc struct {
	FourCC     uint32
	MipSlice   int
	ArraySlice int
}

type ProcessorOutputViewDesc struct {
	MipSlice int
}
