package memutils

import (
	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint
}

// CheckPow2 returns a wrapped PowerOfTwoError if number is not a power of two
func CheckPow2[T Number](number T, name string) error {
	if number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to a multiple of alignment, which must be a power of two. Row pitches are
// derived from unpadded row sizes this way.
func AlignUp(value int, alignment uint) int {
	DebugCheckPow2(alignment, "alignment")
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// DivideRoundingUp divides value by divisor, rounding any remainder up
func DivideRoundingUp(value int, divisor int) int {
	return (value + divisor - 1) / divisor
}
