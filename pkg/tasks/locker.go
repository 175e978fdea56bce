package tasks

import (
	"path/filepath"
	"sync"
)

// PathLocker serialises read-modify-write cycles on the same file.
type PathLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPathLocker creates an empty locker.
func NewPathLocker() *PathLocker {
	return &PathLocker{locks: make(map[string]*sync.Mutex)}
}

// DefaultLocker is shared by tasks that do not set their own.
var DefaultLocker = NewPathLocker()

// Lock blocks until path is free and returns the matching unlock function.
func (l *PathLocker) Lock(path string) func() {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
