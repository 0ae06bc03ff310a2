package memutils

import (
	"math/bits"

	cerrors "github.com/cockroachdb/errors"
)

// SlotBitmap tracks which slots of a fixed-size array are in use. It is not synchronized.
type SlotBitmap struct {
	words []uint64
	size  int
}

// NewSlotBitmap creates a bitmap with size slots, all of which are free
func NewSlotBitmap(size int) *SlotBitmap {
	return &SlotBitmap{
		words: make([]uint64, DivideRoundingUp(size, 64)),
		size:  size,
	}
}

// Len returns the number of slots in the bitmap
func (b *SlotBitmap) Len() int {
	return b.size
}

// InUse returns whether the slot at the provided index is in use
func (b *SlotBitmap) InUse(index int) bool {
	if index < 0 || index >= b.size {
		return false
	}
	return b.words[index/64]&(1<<(index%64)) != 0
}

// FirstFree returns the lowest free slot index, or -1 if every slot is in use
func (b *SlotBitmap) FirstFree() int {
	for wordIndex, word := range b.words {
		if word == ^uint64(0) {
			continue
		}

		index := wordIndex*64 + bits.TrailingZeros64(^word)
		if index >= b.size {
			return -1
		}
		return index
	}

	return -1
}

// Set marks a slot as in use
func (b *SlotBitmap) Set(index int) error {
	if index < 0 || index >= b.size {
		return cerrors.Newf("slot index %d is outside of the bitmap, which has %d slots", index, b.size)
	}
	if b.InUse(index) {
		return cerrors.Newf("slot index %d is already in use", index)
	}

	b.words[index/64] |= 1 << (index % 64)
	return nil
}

// Clear marks a slot as free
func (b *SlotBitmap) Clear(index int) error {
	if !b.InUse(index) {
		return cerrors.Newf("slot index %d is not in use", index)
	}

	b.words[index/64] &^= 1 << (index % 64)
	return nil
}

// Count returns the number of slots in use
func (b *SlotBitmap) Count() int {
	count := 0
	for _, word := range b.words {
		count += bits.OnesCount64(word)
	}
	return count
}
