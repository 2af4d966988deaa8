package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process fallback for the processed-recording set,
// used when Redis is disabled. State is lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]time.Time),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired()

	return store
}

// MarkProcessed records a recording id as handled. Returns false when the id
// was already marked.
func (ms *MemoryStore) MarkProcessed(_ context.Context, recordingID string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if expiry, exists := ms.items[recordingID]; exists && time.Now().Before(expiry) {
		return false, nil
	}
	ms.items[recordingID] = time.Now().Add(processedTTL)
	return true, nil
}

// IsProcessed reports whether a recording id was already handled.
func (ms *MemoryStore) IsProcessed(_ context.Context, recordingID string) (bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	expiry, exists := ms.items[recordingID]
	if !exists || time.Now().After(expiry) {
		return false, nil
	}
	return true, nil
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, expiry := range ms.items {
			if now.After(expiry) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
