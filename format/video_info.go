package format

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/vidmem/memutils"
)

// VideoInfo describes a frame: its abstract format and its dimensions
type VideoInfo struct {
	Format VideoFormat
	Width  int
	Height int
}

// Validate checks that the dimensions are usable
func (i VideoInfo) Validate() error {
	if i.Format == VideoFormatUnknown {
		return errors.Wrap(memutils.ErrInvalidConfig, "video info has no format")
	}
	if i.Width <= 0 || i.Height <= 0 {
		return errors.Wrapf(memutils.ErrInvalidConfig, "video info has invalid dimensions %dx%d", i.Width, i.Height)
	}
	return nil
}

// Layout is the byte layout of a frame in CPU memory
type Layout struct {
	Planes int
	Offset [MaxPlanes]int
	Stride [MaxPlanes]int
	Size   int
}
