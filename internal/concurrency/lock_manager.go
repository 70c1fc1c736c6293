// Package concurrency provides keyed mutual exclusion.
package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key. Keys are never evicted, so use it for
// bounded key spaces such as user ids.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the mutex for key and returns the function that releases it:
//
//	defer lm.Lock(userID)()
func (lm *LockManager) Lock(key string) func() {
	mu := lm.GetLock(key)
	mu.Lock()
	return mu.Unlock
}
