// Package chess provides the board model: colours, pieces, coordinates and
// the piece-indexed position that moves are applied to.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Piece represents either a bare piece type (Pawn..King) or a coloured
// piece code built with MakeColouredPiece.
type Piece int

const (
	Empty Piece = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceValues
)

// String returns the string representation of a piece type.
func (p Piece) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// Board dimensions and the characters the first rank and file map to.
const (
	BoardSize = 8

	RankBase = '1'
	ColBase  = 'a'
)

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// PawnHomeRank returns the rank a colour's pawns start on.
func PawnHomeRank(colour Colour) int {
	if colour == White {
		return 2
	}
	return 7
}

// BackRank returns the rank a colour's pieces start on.
func BackRank(colour Colour) int {
	if colour == White {
		return 1
	}
	return BoardSize
}

// PieceShift is used for encoding coloured pieces.
const PieceShift = 3

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, piece Piece) Piece {
	return Piece((int(piece) << PieceShift) | int(colour))
}

// W creates a white piece.
func W(piece Piece) Piece {
	return MakeColouredPiece(White, piece)
}

// B creates a black piece.
func B(piece Piece) Piece {
	return MakeColouredPiece(Black, piece)
}

// ExtractColour extracts the colour from a coloured piece.
func ExtractColour(colouredPiece Piece) Colour {
	return Colour(colouredPiece & 0x01)
}

// ExtractPiece extracts the piece type from a coloured piece.
func ExtractPiece(colouredPiece Piece) Piece {
	return Piece(colouredPiece >> PieceShift)
}

// IsColouredPiece reports whether p is one of the 12 coloured piece codes.
func IsColouredPiece(p Piece) bool {
	piece := ExtractPiece(p)
	if piece < Pawn || piece > King {
		return false
	}
	return p == MakeColouredPiece(ExtractColour(p), piece)
}

// AllColouredPieces lists the 12 coloured piece codes, White first.
var AllColouredPieces = []Piece{
	W(Pawn), W(Knight), W(Bishop), W(Rook), W(Queen), W(King),
	B(Pawn), B(Knight), B(Bishop), B(Rook), B(Queen), B(King),
}

// PieceTypeFromLetter converts a piece letter of either case to a piece
// type, or Empty if the letter names no piece.
func PieceTypeFromLetter(c byte) Piece {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return Empty
	}
}

// PieceFromLetter converts a FEN letter to a coloured piece: uppercase is
// White, lowercase is Black. Returns Empty for anything else.
func PieceFromLetter(c byte) Piece {
	piece := PieceTypeFromLetter(c)
	if piece == Empty {
		return Empty
	}
	if c >= 'a' && c <= 'z' {
		return B(piece)
	}
	return W(piece)
}

// FENLetter returns the FEN letter of a coloured piece.
func FENLetter(colouredPiece Piece) byte {
	letter := ExtractPiece(colouredPiece).Letter()
	if ExtractColour(colouredPiece) == Black && letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	return letter
}
