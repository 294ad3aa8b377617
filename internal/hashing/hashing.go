// Package hashing provides position hashing and duplicate detection for
// chess games.
package hashing

import (
	"hash/fnv"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
)

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position, or a hash of the
	// move text for games that were not replayed.
	Hash uint64
	// MoveCount is the number of half-moves in the game
	MoveCount int
}

// DuplicateDetector tracks seen games. It is not safe for concurrent use;
// see ThreadSafeDuplicateDetector.
type DuplicateDetector struct {
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires equal move counts
	useExactMatch  bool
	maxCapacity    int
	duplicateCount int
	uniqueCount    int
}

// NewDuplicateDetector creates a new duplicate detector. maxCapacity of 0
// means unlimited; once full, new games are still checked but not stored.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// Signature builds the signature of game. final is the position replay
// reached, or nil to hash the move text instead.
func Signature(game *chess.Game, final *engine.GameState) GameSignature {
	sig := GameSignature{MoveCount: game.PlyCount()}
	if final != nil {
		sig.Hash = PositionHash(final)
	} else {
		sig.Hash = moveSequenceHash(game.Moves)
	}
	return sig
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate.
func (d *DuplicateDetector) CheckAndAdd(game *chess.Game, final *engine.GameState) bool {
	sig := Signature(game, final)

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if !d.IsFull() {
		d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
		d.uniqueCount++
	}
	return false
}

func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash {
		return false
	}
	if d.useExactMatch && a.MoveCount != b.MoveCount {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.uniqueCount
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.uniqueCount >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
	d.uniqueCount = 0
}

// moveSequenceHash hashes the move tokens with FNV-1a, separating tokens
// so that ["e4", "e5"] and ["e4e5"] differ.
func moveSequenceHash(moves []string) uint64 {
	h := fnv.New64a()
	for _, move := range moves {
		h.Write([]byte(move))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
