// Package eco classifies games by opening, using an ECO (Encyclopaedia of
// Chess Openings) file of PGN lines tagged with ECO, Opening and Variation.
package eco

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
	"github.com/lgbarn/chesswrapper-go/internal/hashing"
	"github.com/lgbarn/chesswrapper-go/internal/parser"
)

// HalfMoveLimit is how far, in plies, a game may be from an ECO line's
// length and still match its position.
const HalfMoveLimit = 6

// tableSize is the number of hash buckets.
const tableSize = 4096

// Entry is one classified opening line.
type Entry struct {
	ECOCode      string // e.g., "B33"
	Opening      string // e.g., "Sicilian"
	Variation    string // e.g., "Sveshnikov"
	SubVariation string

	RequiredHash   uint64 // position hash after the line
	CumulativeHash uint64 // XOR of the position hashes along the line
	HalfMoves      int
	next           *Entry
}

// Classifier maps positions reached in a game to ECO entries.
type Classifier struct {
	table         [tableSize]*Entry
	maxHalfMoves  int
	entriesLoaded int
}

// NewClassifier creates a classifier with no entries.
func NewClassifier() *Classifier {
	return &Classifier{maxHalfMoves: HalfMoveLimit}
}

// LoadFromFile loads ECO data from a PGN file.
func (ec *Classifier) LoadFromFile(filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return fmt.Errorf("cannot open ECO file: %w", err)
	}
	defer file.Close()

	return ec.LoadFromReader(file)
}

// LoadFromReader loads ECO data from a reader. Games without an ECO tag
// are ignored.
func (ec *Classifier) LoadFromReader(r io.Reader) error {
	games, err := parser.ParseAll(r)
	if err != nil {
		return fmt.Errorf("error parsing ECO file: %w", err)
	}
	for _, game := range games {
		ec.addEntry(game)
	}
	return nil
}

// addEntry replays an ECO line from the initial position. A line stops at
// its first move that cannot be applied.
func (ec *Classifier) addEntry(game *chess.Game) {
	code := game.GetTag("ECO")
	if code == "" {
		return
	}

	state := engine.NewInitialState()
	var cumulative uint64
	halfMoves := 0
	for _, token := range game.Moves {
		if state.ApplySAN(token) != nil {
			break
		}
		halfMoves++
		cumulative ^= hashing.PositionHash(state)
	}
	if halfMoves == 0 {
		return
	}

	entry := &Entry{
		ECOCode:        code,
		Opening:        game.GetTag("Opening"),
		Variation:      game.GetTag("Variation"),
		SubVariation:   game.GetTag("SubVariation"),
		RequiredHash:   hashing.PositionHash(state),
		CumulativeHash: cumulative,
		HalfMoves:      halfMoves,
	}

	ix := entry.RequiredHash % tableSize
	for existing := ec.table[ix]; existing != nil; existing = existing.next {
		if existing.RequiredHash == entry.RequiredHash &&
			existing.HalfMoves == entry.HalfMoves &&
			existing.CumulativeHash == entry.CumulativeHash {
			return // first line for a position wins
		}
	}

	entry.next = ec.table[ix]
	ec.table[ix] = entry
	ec.entriesLoaded++

	if halfMoves+HalfMoveLimit > ec.maxHalfMoves {
		ec.maxHalfMoves = halfMoves + HalfMoveLimit
	}
}

// ClassifyGame replays game from its FEN tag, or the initial position, and
// returns the entry matching the deepest position reached, or nil.
func (ec *Classifier) ClassifyGame(game *chess.Game) *Entry {
	if ec.entriesLoaded == 0 {
		return nil
	}

	state := engine.NewInitialState()
	if fen := game.FEN(); fen != "" {
		decoded, err := engine.DecodeFEN(fen)
		if err != nil {
			return nil
		}
		state = decoded
	}

	var best *Entry
	var cumulative uint64
	for ply, token := range game.Moves {
		if ply >= ec.maxHalfMoves || state.ApplySAN(token) != nil {
			break
		}
		posHash := hashing.PositionHash(state)
		cumulative ^= posHash
		if match := ec.findMatch(posHash, cumulative, ply+1); match != nil {
			best = match
		}
	}
	return best
}

// findMatch prefers an entry reached by the same move order and length,
// then any entry for the position within HalfMoveLimit plies.
func (ec *Classifier) findMatch(posHash, cumulative uint64, halfMoves int) *Entry {
	var possible *Entry
	for entry := ec.table[posHash%tableSize]; entry != nil; entry = entry.next {
		if entry.RequiredHash != posHash {
			continue
		}
		if entry.HalfMoves == halfMoves && entry.CumulativeHash == cumulative {
			return entry
		}
		if abs(halfMoves-entry.HalfMoves) <= HalfMoveLimit {
			possible = entry
		}
	}
	return possible
}

// AddTags sets ECO, Opening, Variation and SubVariation on game from its
// classification. It reports whether a match was found.
func (ec *Classifier) AddTags(game *chess.Game) bool {
	match := ec.ClassifyGame(game)
	if match == nil {
		return false
	}

	for name, value := range map[string]string{
		"ECO":          match.ECOCode,
		"Opening":      match.Opening,
		"Variation":    match.Variation,
		"SubVariation": match.SubVariation,
	} {
		if value != "" {
			game.SetTag(name, value)
		}
	}
	return true
}

// EntriesLoaded returns the number of ECO entries loaded.
func (ec *Classifier) EntriesLoaded() int {
	return ec.entriesLoaded
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
