// Package lock provides per-key mutual exclusion for the orchestrator's
// read-modify-write sequences against the backend stores.
package lock

import "sync"

// KeyedMutex serializes critical sections by string key. Mutexes are
// created on first use and retained for the process lifetime; the key
// space here is shipment ids, which stays small.
type KeyedMutex struct {
	mu sync.Map
}

// Lock acquires the mutex for key and returns its unlock function.
//
//	unlock := locks.Lock(shipmentID)
//	defer unlock()
func (k *KeyedMutex) Lock(key string) func() {
	v, _ := k.mu.LoadOrStore(key, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
