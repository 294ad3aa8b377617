package engine

import (
	"fmt"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// ApplyMove moves a piece of the side to move to destination and updates
// the turn, castling rights, en passant target and clocks.
//
// pieceLetter names the piece type in either case (p, n, b, r, q, k); its
// colour always comes from ToMove. The origin is resolved by
// chess.Position.MovePiece, so when several pieces can reach destination
// the first in index order moves. Whether the move captures is decided by
// the occupancy of destination; captureHint only matters for a pawn moving
// onto the empty en passant target, which it turns into an en passant
// capture.
//
// Errors wrap ErrValidation (unknown letter), ErrFormat (bad square) or
// ErrLookup (no piece can make the move) inside a *errors.MoveError. The
// state is unchanged after any error.
func (s *GameState) ApplyMove(pieceLetter byte, destination string, captureHint bool) error {
	pieceType := chess.PieceTypeFromLetter(pieceLetter)
	if pieceType == chess.Empty {
		return &errors.MoveError{
			Err:    fmt.Errorf("piece letter %q: %w", pieceLetter, errors.ErrValidation),
			Piece:  string(pieceLetter),
			Square: destination,
		}
	}
	dest, err := chess.SquareToCoord(destination)
	if err != nil {
		return &errors.MoveError{Err: err, Piece: string(pieceLetter), Square: destination}
	}
	return s.applyPieceMove(pieceType, dest, captureHint, nil)
}

// applyPieceMove is the shared body of ApplyMove and ApplySAN. filter, if
// non-nil, limits the candidate origins.
func (s *GameState) applyPieceMove(pieceType chess.Piece, dest chess.Coordinate, captureHint bool, filter func(chess.Coordinate) bool) error {
	colour := s.ToMove
	piece := chess.MakeColouredPiece(colour, pieceType)
	captured := s.Position.Get(dest)

	enPassant := pieceType == chess.Pawn && captureHint && captured == chess.Empty &&
		s.EnPassant != nil && *s.EnPassant == dest

	var origin chess.Coordinate
	var err error
	if enPassant {
		victim := chess.Coordinate{Rank: dest.Rank - chess.ColourOffset(colour), File: dest.File}
		origin, err = s.Position.MoveEnPassant(piece, dest, victim, filter)
	} else {
		origin, err = s.Position.MovePieceFrom(piece, dest, filter)
	}
	if err != nil {
		return &errors.MoveError{
			Err:    err,
			Piece:  string(chess.FENLetter(piece)),
			Square: dest.String(),
		}
	}

	s.updateCastlingRights(piece, origin, dest, captured)
	s.updateEnPassant(pieceType, origin, dest)

	if enPassant || captured != chess.Empty || pieceType == chess.Pawn {
		s.HalfmoveClock = 0
	} else {
		s.HalfmoveClock++
	}

	s.finishTurn(colour)
	return nil
}

// updateEnPassant sets the target to the square a pawn passed over on a
// double advance and clears it after any other move.
func (s *GameState) updateEnPassant(pieceType chess.Piece, origin, dest chess.Coordinate) {
	s.EnPassant = nil
	if pieceType != chess.Pawn {
		return
	}
	if diff := dest.Rank - origin.Rank; diff == 2 || diff == -2 {
		s.EnPassant = &chess.Coordinate{Rank: (origin.Rank + dest.Rank) / 2, File: origin.File}
	}
}
