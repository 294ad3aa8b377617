package chess

import (
	"fmt"

	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// Position is an 8x8 grid of pieces together with a per-piece index of the
// squares each coloured piece occupies. A square holds piece P exactly when
// P's index lists that square exactly once.
//
// The order of each index list is significant: it is the insertion order,
// updated in place as pieces move, and it decides which piece moves when
// more than one of the same type can reach a square. Copy preserves it.
//
// A Position is not safe for concurrent use.
type Position struct {
	// grid[rank-1][file-1]
	grid  [BoardSize][BoardSize]Piece
	index map[Piece][]Coordinate
}

// NewPosition creates an empty position.
func NewPosition() *Position {
	p := &Position{index: make(map[Piece][]Coordinate, len(AllColouredPieces))}
	for _, piece := range AllColouredPieces {
		p.index[piece] = nil
	}
	return p
}

// Get returns the piece on c, or Empty for an empty or off-board square.
func (p *Position) Get(c Coordinate) Piece {
	if !c.Valid() {
		return Empty
	}
	return p.grid[c.Rank-1][c.File-1]
}

// Locations returns a copy of the squares occupied by piece, in index order.
func (p *Position) Locations(piece Piece) []Coordinate {
	locs := p.index[piece]
	if len(locs) == 0 {
		return nil
	}
	out := make([]Coordinate, len(locs))
	copy(out, locs)
	return out
}

// Count returns the number of pieces on the board.
func (p *Position) Count() int {
	n := 0
	for _, locs := range p.index {
		n += len(locs)
	}
	return n
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	np := &Position{
		grid:  p.grid,
		index: make(map[Piece][]Coordinate, len(p.index)),
	}
	for piece, locs := range p.index {
		np.index[piece] = append([]Coordinate(nil), locs...)
	}
	return np
}

// AddPiece places piece on c and appends c to the piece's index. A piece
// already on c is replaced and dropped from its own index.
func (p *Position) AddPiece(piece Piece, c Coordinate) error {
	if !IsColouredPiece(piece) {
		return fmt.Errorf("piece code %d: %w", piece, errors.ErrValidation)
	}
	if !c.Valid() {
		return fmt.Errorf("rank %d, file %d: %w", c.Rank, c.File, errors.ErrRange)
	}
	if old := p.Get(c); old != Empty {
		p.unindex(old, c)
	}
	p.grid[c.Rank-1][c.File-1] = piece
	p.index[piece] = append(p.index[piece], c)
	return nil
}

// RemovePiece clears c and returns the piece that was there, or Empty.
func (p *Position) RemovePiece(c Coordinate) Piece {
	piece := p.Get(c)
	if piece == Empty {
		return Empty
	}
	p.unindex(piece, c)
	p.grid[c.Rank-1][c.File-1] = Empty
	return piece
}

// MovePiece moves piece to dest and returns the square it came from.
//
// Candidate origins are the piece's index entries, tried in index order;
// the first one from which CanReach holds is used. The move is a capture
// when dest is occupied, and the captured piece is removed from its index.
// If no candidate qualifies MovePiece returns ErrLookup and the position is
// left unchanged.
func (p *Position) MovePiece(piece Piece, dest Coordinate) (Coordinate, error) {
	return p.MovePieceFrom(piece, dest, nil)
}

// MovePieceFrom is MovePiece restricted to origins accepted by filter.
// A nil filter accepts every origin.
func (p *Position) MovePieceFrom(piece Piece, dest Coordinate, filter func(Coordinate) bool) (Coordinate, error) {
	if !IsColouredPiece(piece) {
		return Coordinate{}, fmt.Errorf("piece code %d: %w", piece, errors.ErrValidation)
	}
	if !dest.Valid() {
		return Coordinate{}, fmt.Errorf("rank %d, file %d: %w", dest.Rank, dest.File, errors.ErrRange)
	}
	captured := p.Get(dest)
	return p.moveFrom(piece, dest, captured != Empty, filter)
}

// MoveEnPassant moves a pawn diagonally onto the empty square dest and
// removes the opposing pawn on victim. Origins are filtered as in
// MovePieceFrom. It fails with ErrLookup when no pawn can make the capture
// or victim holds no opposing pawn.
func (p *Position) MoveEnPassant(pawn Piece, dest, victim Coordinate, filter func(Coordinate) bool) (Coordinate, error) {
	if ExtractPiece(pawn) != Pawn || !IsColouredPiece(pawn) {
		return Coordinate{}, fmt.Errorf("piece code %d is not a pawn: %w", pawn, errors.ErrValidation)
	}
	if p.Get(dest) != Empty {
		return Coordinate{}, fmt.Errorf("en passant square %s occupied: %w", dest, errors.ErrLookup)
	}
	if p.Get(victim) != MakeColouredPiece(ExtractColour(pawn).Opposite(), Pawn) {
		return Coordinate{}, fmt.Errorf("no pawn to capture on %s: %w", victim, errors.ErrLookup)
	}
	origin, err := p.moveFrom(pawn, dest, true, filter)
	if err != nil {
		return Coordinate{}, err
	}
	p.RemovePiece(victim)
	return origin, nil
}

// Relocate moves whatever stands on from to the empty square to without
// any geometry check, keeping the piece's index slot. It is used for the
// rook half of castling.
func (p *Position) Relocate(from, to Coordinate) error {
	piece := p.Get(from)
	if piece == Empty {
		return fmt.Errorf("no piece on %s: %w", from, errors.ErrLookup)
	}
	if !to.Valid() {
		return fmt.Errorf("rank %d, file %d: %w", to.Rank, to.File, errors.ErrRange)
	}
	if p.Get(to) != Empty {
		return fmt.Errorf("square %s occupied: %w", to, errors.ErrLookup)
	}
	locs := p.index[piece]
	for i := range locs {
		if locs[i] == from {
			locs[i] = to
			break
		}
	}
	p.grid[from.Rank-1][from.File-1] = Empty
	p.grid[to.Rank-1][to.File-1] = piece
	return nil
}

// moveFrom resolves the origin before touching the board so a failed move
// leaves no partial mutation.
func (p *Position) moveFrom(piece Piece, dest Coordinate, isCapture bool, filter func(Coordinate) bool) (Coordinate, error) {
	locs := p.index[piece]
	slot := -1
	for i, from := range locs {
		if filter != nil && !filter(from) {
			continue
		}
		if CanReach(piece, from, dest, isCapture) {
			slot = i
			break
		}
	}
	if slot < 0 {
		return Coordinate{}, fmt.Errorf("no %c can reach %s: %w", FENLetter(piece), dest, errors.ErrLookup)
	}

	origin := locs[slot]
	captured := p.Get(dest)
	if captured != Empty {
		p.unindex(captured, dest)
	}
	// Landing on an identical piece shifts this same list, so find the
	// origin slot again by value.
	locs = p.index[piece]
	for i := range locs {
		if locs[i] == origin {
			locs[i] = dest
			break
		}
	}
	p.grid[origin.Rank-1][origin.File-1] = Empty
	p.grid[dest.Rank-1][dest.File-1] = piece
	return origin, nil
}

// unindex removes c from piece's index, preserving the order of the rest.
func (p *Position) unindex(piece Piece, c Coordinate) {
	locs := p.index[piece]
	for i := range locs {
		if locs[i] == c {
			p.index[piece] = append(locs[:i], locs[i+1:]...)
			return
		}
	}
}

// CanReach reports whether piece could move from one square to another by
// its movement geometry alone. Intervening pieces and king safety are not
// considered.
func CanReach(piece Piece, from, to Coordinate, isCapture bool) bool {
	if from == to {
		return false
	}
	dRank := to.Rank - from.Rank
	dFile := to.File - from.File
	absRank, absFile := abs(dRank), abs(dFile)

	switch ExtractPiece(piece) {
	case Pawn:
		colour := ExtractColour(piece)
		dir := ColourOffset(colour)
		if isCapture {
			return absFile == 1 && dRank == dir
		}
		if dFile != 0 {
			return false
		}
		return dRank == dir || (from.Rank == PawnHomeRank(colour) && dRank == 2*dir)
	case King:
		return absRank <= 1 && absFile <= 1
	case Queen:
		return dRank == 0 || dFile == 0 || absRank == absFile
	case Rook:
		return dRank == 0 || dFile == 0
	case Bishop:
		return absRank == absFile
	case Knight:
		return (absRank == 2 && absFile == 1) || (absRank == 1 && absFile == 2)
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
