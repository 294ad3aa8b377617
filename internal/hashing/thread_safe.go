package hashing

import (
	"sync"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
)

// ThreadSafeDuplicateDetector wraps DuplicateDetector with mutex protection for concurrent access.
type ThreadSafeDuplicateDetector struct {
	detector *DuplicateDetector
	mu       sync.RWMutex
}

// NewThreadSafeDuplicateDetector creates a new thread-safe detector.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafeDuplicateDetector(exactMatch bool, maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{
		detector: NewDuplicateDetector(exactMatch, maxCapacity),
	}
}

// CheckAndAdd atomically checks if a game is a duplicate and adds it to the hash table.
func (d *ThreadSafeDuplicateDetector) CheckAndAdd(game *chess.Game, final *engine.GameState) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.CheckAndAdd(game, final)
}

// DuplicateCount returns the number of duplicates detected.
func (d *ThreadSafeDuplicateDetector) DuplicateCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.DuplicateCount()
}

// UniqueCount returns the number of unique games.
func (d *ThreadSafeDuplicateDetector) UniqueCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.UniqueCount()
}
