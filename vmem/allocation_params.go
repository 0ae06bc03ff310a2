package vmem

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/vidmem/device"
	"github.com/vkngwrapper/vidmem/format"
	"github.com/vkngwrapper/vidmem/memutils"
	"golang.org/x/exp/slices"
)

// Alignment is padding added around a frame so the texture holding it satisfies device constraints
type Alignment struct {
	PaddingLeft   int
	PaddingRight  int
	PaddingTop    int
	PaddingBottom int
}

// AllocationParams describes the textures backing one frame: one descriptor per texture, plus the frame
// info before and after alignment padding.
type AllocationParams struct {
	// Info is the frame as negotiated, without padding
	Info format.VideoInfo
	// AlignedInfo is the frame after Align has been applied
	AlignedInfo format.VideoInfo
	// Padding is the alignment last applied by Align
	Padding Alignment
	// Format is the native mapping of Info.Format
	Format *format.Info
	// Desc holds one descriptor per texture. Formats with a single native format use one descriptor
	// even if they have several planes.
	Desc  []device.TextureDesc
	Flags AllocationFlags
}

// NewAllocationParams builds the texture descriptors for a frame. It fails with memutils.ErrUnsupportedFormat
// if the table has no native mapping for the frame's format.
func NewAllocationParams(table format.Table, info format.VideoInfo, flags AllocationFlags, bindFlags device.BindFlags) (*AllocationParams, error) {
	err := info.Validate()
	if err != nil {
		return nil, err
	}

	formatInfo, ok := table.Lookup(info.Format)
	if !ok || formatInfo.NPlanes() == 0 {
		return nil, errors.Wrapf(memutils.ErrUnsupportedFormat, "no native mapping for %s", info.Format)
	}

	params := &AllocationParams{
		Info:        info,
		AlignedInfo: info,
		Format:      formatInfo,
		Flags:       flags,
		Desc:        make([]device.TextureDesc, formatInfo.NTextures()),
	}

	for i := range params.Desc {
		params.Desc[i] = device.TextureDesc{
			MipLevels:  1,
			ArraySize:  1,
			SampleDesc: device.SampleDesc{Count: 1, Quality: 0},
			Usage:      device.UsageDefault,
			BindFlags:  bindFlags,
		}
	}
	params.resizeDescriptors(info.Width, info.Height)

	return params, nil
}

func (p *AllocationParams) resizeDescriptors(width, height int) {
	if p.Format.Native != device.FormatUnknown {
		p.Desc[0].Width = width
		p.Desc[0].Height = height
		p.Desc[0].Format = p.Format.Native
		return
	}

	for i := range p.Desc {
		p.Desc[i].Width = p.Format.PlaneWidth(i, width)
		p.Desc[i].Height = p.Format.PlaneHeight(i, height)
		p.Desc[i].Format = p.Format.Planes[i].Format
	}
}

// Align pads the frame. Padding is always applied relative to Info, so aligning again replaces the
// previous padding instead of adding to it. Info is left untouched; the padded frame is stored in
// AlignedInfo and the descriptors are resized to match it.
func (p *AllocationParams) Align(align Alignment) error {
	if align.PaddingLeft < 0 || align.PaddingRight < 0 || align.PaddingTop < 0 || align.PaddingBottom < 0 {
		return errors.Wrapf(memutils.ErrInvalidConfig, "padding must not be negative: %+v", align)
	}

	width := p.Info.Width + align.PaddingLeft + align.PaddingRight
	height := p.Info.Height + align.PaddingTop + align.PaddingBottom

	if p.Format.IsSemiPlanar() && (width%2 != 0 || height%2 != 0) {
		return errors.Wrapf(memutils.ErrInvalidConfig, "%s frames must have even dimensions after padding, got %dx%d", p.Info.Format, width, height)
	}

	p.Padding = align
	p.AlignedInfo = p.Info
	p.AlignedInfo.Width = width
	p.AlignedInfo.Height = height
	p.resizeDescriptors(width, height)

	return nil
}

// UseTextureArray switches the params to texture array allocation with arraySize slices. Formats
// backed by more than one texture cannot share a single texture array.
func (p *AllocationParams) UseTextureArray(arraySize int) error {
	if arraySize < 2 {
		return errors.Wrapf(memutils.ErrInvalidConfig, "a texture array needs at least 2 slices, got %d", arraySize)
	}
	if len(p.Desc) > 1 {
		return errors.Wrapf(memutils.ErrInvalidConfig, "%s frames use %d textures and cannot be allocated from a texture array", p.Info.Format, len(p.Desc))
	}

	p.Flags |= AllocationTextureArray
	for i := range p.Desc {
		p.Desc[i].ArraySize = arraySize
	}

	return nil
}

// Copy returns a deep copy of the params
func (p *AllocationParams) Copy() *AllocationParams {
	params := *p
	params.Desc = slices.Clone(p.Desc)
	return &params
}

// Equal returns true if other describes the same textures
func (p *AllocationParams) Equal(other *AllocationParams) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.Info == other.Info &&
		p.AlignedInfo == other.AlignedInfo &&
		p.Padding == other.Padding &&
		p.Flags == other.Flags &&
		slices.Equal(p.Desc, other.Desc)
}

// EvenDimensionAlignment returns the extra padding that rounds the width and height of a semi-planar 4:2:0
// frame up to even values. The extra column and row go to the right and bottom. Pass AlignedInfo to account
// for padding already applied. It returns false if no padding is needed.
func EvenDimensionAlignment(formatInfo *format.Info, info format.VideoInfo) (Alignment, bool) {
	if !formatInfo.IsSemiPlanar() {
		return Alignment{}, false
	}

	align := Alignment{
		PaddingRight:  info.Width % 2,
		PaddingBottom: info.Height % 2,
	}

	return align, align.PaddingRight != 0 || align.PaddingBottom != 0
}
