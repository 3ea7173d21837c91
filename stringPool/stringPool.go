/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package stringPool interns the UTF-8 strings that back class, method,
// and field names, so the classloader and object tables carry small
// integer indices instead of duplicating Go strings everywhere a name is
// referenced.
package stringPool

import "sync"

var (
	mu    sync.RWMutex
	pool  []string
	index = make(map[string]uint32)
)

func init() {
	Reset()
}

// Reset empties the pool and re-interns the two well-known bootstrap
// names at their fixed indices (types.ObjectPoolStringIndex and
// types.StringPoolStringIndex). Exported for tests that need a clean
// pool between runs.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	pool = nil
	index = make(map[string]uint32)
	pool = append(pool, "java/lang/Object")
	index["java/lang/Object"] = 0
	pool = append(pool, "java/lang/String")
	index["java/lang/String"] = 1
}

// GetStringIndex interns s if it is not already present and returns its
// pool index either way.
func GetStringIndex(s string) uint32 {
	mu.RLock()
	if idx, ok := index[s]; ok {
		mu.RUnlock()
		return idx
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if idx, ok := index[s]; ok { // re-check after acquiring the write lock
		return idx
	}
	idx := uint32(len(pool))
	pool = append(pool, s)
	index[s] = idx
	return idx
}

// GetStringPointer returns a pointer to the interned string at index, or
// nil if index is out of range.
func GetStringPointer(idx uint32) *string {
	mu.RLock()
	defer mu.RUnlock()
	if idx >= uint32(len(pool)) {
		return nil
	}
	return &pool[idx]
}

// GetStringPoolSize returns the number of interned strings.
func GetStringPoolSize() uint32 {
	mu.RLock()
	defer mu.RUnlock()
	return uint32(len(pool))
}
