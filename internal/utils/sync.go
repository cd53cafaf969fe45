package utils

import (
	"sync"
)

// OptionalMutex is a mutex that only locks when UseMutex is set. Objects that
// the caller promises to synchronize externally leave it unset.
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

// OptionalRWMutex is the reader/writer counterpart of OptionalMutex. With UseMutex unset every
// method is a no-op, so readers and writers are not excluded from one another.
type OptionalRWMutex struct {
	Mutex    sync.RWMutex
	UseMutex bool
}

// Lock takes the write lock when UseMutex is set
func (m *OptionalRWMutex) Lock() {
	if m.UseMutex {
		m.Mutex.Lock()
	}
}

func (m *OptionalRWMutex) Unlock() {
	if m.UseMutex {
		m.Mutex.Unlock()
	}
}

// RLock takes a read lock when UseMutex is set. Any number of readers may hold it at once.
func (m *OptionalRWMutex) RLock() {
	if m.UseMutex {
		m.Mutex.RLock()
	}
}

func (m *OptionalRWMutex) RUnlock() {
	if m.UseMutex {
		m.Mutex.RUnlock()
	}
}
