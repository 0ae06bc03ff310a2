package memutils

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

// ErrAllocationFailed is marked onto every error caused by a failed native texture or view creation, or a failed
// map. Callers may decide whether to retry.
var ErrAllocationFailed error = errors.New("gpu memory allocation failed")

// ErrFlushing is returned by array-slot allocation while the allocator is flushing. It should not be retried until
// flushing has been cleared.
var ErrFlushing error = errors.New("allocator is flushing")

// ErrInvalidConfig is returned when a configuration is malformed
var ErrInvalidConfig error = errors.New("invalid configuration")

// ErrUnsupportedFormat is returned when a pixel format has no native mapping
var ErrUnsupportedFormat error = errors.New("unsupported pixel format")

// ErrWrongAllocator is returned when a pool is handed an allocator it cannot drive
var ErrWrongAllocator error = errors.New("allocator has the wrong type")

// ErrViewUnavailable is returned when a derived view was requested from a texture whose bind flags do not
// permit it. It is not a device failure.
var ErrViewUnavailable error = errors.New("view is unavailable for this texture")

// ErrUnsupportedSubresource is returned when a view cannot be created for a nonzero array slice
var ErrUnsupportedSubresource error = errors.New("view is unsupported for this subresource")

// ErrNotMapped is returned when unmapping memory that is not mapped
var ErrNotMapped error = errors.New("memory is not mapped")
