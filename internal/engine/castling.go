package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// CastlingRights is the set of castling options still available.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// castlingLetters is the canonical FEN order: K, Q, k, q.
var castlingLetters = []struct {
	right  CastlingRights
	letter byte
}{
	{WhiteKingside, 'K'},
	{WhiteQueenside, 'Q'},
	{BlackKingside, 'k'},
	{BlackQueenside, 'q'},
}

// Has reports whether every right in r is present.
func (c CastlingRights) Has(r CastlingRights) bool {
	return c&r == r
}

// String returns the FEN castling field: letters in K, Q, k, q order, or "-".
func (c CastlingRights) String() string {
	var sb strings.Builder
	for _, cl := range castlingLetters {
		if c.Has(cl.right) {
			sb.WriteByte(cl.letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ParseCastlingRights parses a FEN castling field. Letters may repeat and
// appear in any order.
func ParseCastlingRights(field string) (CastlingRights, error) {
	if field == "-" {
		return NoCastling, nil
	}
	if field == "" {
		return NoCastling, fmt.Errorf("empty castling field: %w", errors.ErrValidation)
	}
	var rights CastlingRights
	for i := 0; i < len(field); i++ {
		r, ok := castlingRightForLetter(field[i])
		if !ok {
			return NoCastling, fmt.Errorf("castling letter %q: %w", field[i], errors.ErrValidation)
		}
		rights |= r
	}
	return rights, nil
}

func castlingRightForLetter(letter byte) (CastlingRights, bool) {
	for _, cl := range castlingLetters {
		if cl.letter == letter {
			return cl.right, true
		}
	}
	return NoCastling, false
}

// colourRights returns both rights belonging to colour.
func colourRights(colour chess.Colour) CastlingRights {
	if colour == chess.White {
		return WhiteKingside | WhiteQueenside
	}
	return BlackKingside | BlackQueenside
}

// sideRight returns the single right for colour on one wing.
func sideRight(colour chess.Colour, kingside bool) CastlingRights {
	switch {
	case colour == chess.White && kingside:
		return WhiteKingside
	case colour == chess.White:
		return WhiteQueenside
	case kingside:
		return BlackKingside
	default:
		return BlackQueenside
	}
}

// rookCornerRight returns the right tied to a rook standing on its original
// corner square, or NoCastling if c is not such a corner for colour.
func rookCornerRight(colour chess.Colour, c chess.Coordinate) CastlingRights {
	if c.Rank != chess.BackRank(colour) {
		return NoCastling
	}
	switch c.File {
	case kingsideRookFile:
		return sideRight(colour, true)
	case queensideRookFile:
		return sideRight(colour, false)
	}
	return NoCastling
}

// updateCastlingRights removes rights after piece moved from origin,
// capturing captured (Empty if none) on dest. A king move removes both of
// its side's rights; a rook leaving its corner removes that corner's right;
// a rook captured on its corner removes the opponent's matching right.
func (s *GameState) updateCastlingRights(piece chess.Piece, origin, dest chess.Coordinate, captured chess.Piece) {
	colour := chess.ExtractColour(piece)
	switch chess.ExtractPiece(piece) {
	case chess.King:
		s.Castling &^= colourRights(colour)
	case chess.Rook:
		s.Castling &^= rookCornerRight(colour, origin)
	}
	if captured != chess.Empty && chess.ExtractPiece(captured) == chess.Rook {
		s.Castling &^= rookCornerRight(chess.ExtractColour(captured), dest)
	}
}

// Files used by standard castling.
const (
	kingStartFile     = 5
	kingsideRookFile  = 8
	queensideRookFile = 1
)

// Castle performs a castling move for the side to move: the king goes two
// files towards the rook and the rook lands on the square the king crossed.
// The matching castling right must be present (ErrValidation) and king,
// rook and both destination squares must be as expected (ErrLookup). The
// state is left unchanged on failure.
func (s *GameState) Castle(kingside bool) error {
	colour := s.ToMove
	text := "O-O-O"
	if kingside {
		text = "O-O"
	}

	if !s.Castling.Has(sideRight(colour, kingside)) {
		return &errors.MoveError{
			Err:   fmt.Errorf("%s has no %s right: %w", colour, text, errors.ErrValidation),
			Token: text,
		}
	}

	rank := chess.BackRank(colour)
	kingFrom := chess.Coordinate{Rank: rank, File: kingStartFile}
	kingTo := chess.Coordinate{Rank: rank, File: 7}
	rookFrom := chess.Coordinate{Rank: rank, File: kingsideRookFile}
	rookTo := chess.Coordinate{Rank: rank, File: 6}
	if !kingside {
		kingTo.File = 3
		rookFrom.File = queensideRookFile
		rookTo.File = 4
	}

	pos := s.Position
	switch {
	case pos.Get(kingFrom) != chess.MakeColouredPiece(colour, chess.King):
		return castleLookupError(text, "no king on %s", kingFrom)
	case pos.Get(rookFrom) != chess.MakeColouredPiece(colour, chess.Rook):
		return castleLookupError(text, "no rook on %s", rookFrom)
	case pos.Get(kingTo) != chess.Empty:
		return castleLookupError(text, "%s is occupied", kingTo)
	case pos.Get(rookTo) != chess.Empty:
		return castleLookupError(text, "%s is occupied", rookTo)
	}

	// Both squares were checked above, so neither relocation can fail.
	_ = pos.Relocate(kingFrom, kingTo)
	_ = pos.Relocate(rookFrom, rookTo)

	s.Castling &^= colourRights(colour)
	s.EnPassant = nil
	s.HalfmoveClock++
	s.finishTurn(colour)
	return nil
}

func castleLookupError(text, format string, sq chess.Coordinate) error {
	return &errors.MoveError{
		Err:   fmt.Errorf(format+": %w", sq, errors.ErrLookup),
		Token: text,
	}
}
