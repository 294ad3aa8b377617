package engine

import "github.com/lgbarn/chesswrapper-go/internal/chess"

// GameState is a position plus the metadata FEN carries with it.
//
// A GameState is mutated only through ApplyMove, ApplySAN and Castle, and
// is not safe for concurrent use: one owner applies moves one after
// another. There is no undo; take a Copy before trying a move speculatively.
type GameState struct {
	Position *chess.Position

	// Who has the next move.
	ToMove chess.Colour

	// Remaining castling options.
	Castling CastlingRights

	// Square passed over by the last double pawn advance, or nil.
	EnPassant *chess.Coordinate

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint

	// The current move number, starting at 1.
	MoveNumber uint
}

// NewGameState creates an empty board with White to move, no castling
// rights and move number 1.
func NewGameState() *GameState {
	return &GameState{
		Position:   chess.NewPosition(),
		ToMove:     chess.White,
		MoveNumber: 1,
	}
}

// NewInitialState creates a state holding the standard starting position.
func NewInitialState() *GameState {
	state, err := DecodeFEN(InitialFEN)
	if err != nil {
		panic(err)
	}
	return state
}

// Copy creates a deep copy of the state, including piece index order.
func (s *GameState) Copy() *GameState {
	ns := *s
	ns.Position = s.Position.Copy()
	if s.EnPassant != nil {
		ep := *s.EnPassant
		ns.EnPassant = &ep
	}
	return &ns
}

// EnPassantSquare returns the en passant target square name, or "-".
func (s *GameState) EnPassantSquare() string {
	if s.EnPassant == nil {
		return "-"
	}
	return s.EnPassant.String()
}

// FEN encodes the state as a FEN string.
func (s *GameState) FEN() string {
	return EncodeFEN(s)
}

// finishTurn advances the move number after Black's move and passes the
// turn to the other side.
func (s *GameState) finishTurn(mover chess.Colour) {
	if mover == chess.Black {
		s.MoveNumber++
	}
	s.ToMove = mover.Opposite()
}
