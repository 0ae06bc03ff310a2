package memutils

// Validatable is anything that can check its own bookkeeping. Allocators implement it so that
// DebugValidate can check slot accounting after every free.
type Validatable interface {
	Validate() error
}
