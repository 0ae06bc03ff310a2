package utils

import (
	"sync"
)

// OptionalMutex is a mutex that can be switched off for allocators that are externally synchronized
type OptionalMutex struct {
	Mutex    sync.Mutex
	UseMutex bool
}

func (m *OptionalMutex) Lock() {
	if m.UseMutex {
		m.Mutex.Lock()
	}
}

func (m *OptionalMutex) Unlock() {
	if m.UseMutex {
		m.Mutex.Unlock()
	}
}

// WithLock runs fn while holding locker
func WithLock(locker sync.Locker, fn func()) {
	locker.Lock()
	defer locker.Unlock()

	fn()
}
