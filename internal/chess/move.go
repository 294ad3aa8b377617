package chess

// CastleSide identifies a castling move.
type CastleSide int

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

// CheckStatus indicates whether a move claims check or checkmate.
type CheckStatus int

const (
	NoCheck CheckStatus = iota
	Check
	Checkmate
)

// Move is a SAN token split into its parts. It says what the notation
// claims; resolving it against a position is the engine's job.
type Move struct {
	// The move text (e.g., "Nf3", "exd5", "O-O").
	Text string

	// Castle is set for castling tokens; the remaining fields are then unused.
	Castle CastleSide

	// The piece type being moved (Pawn when the token has no piece letter).
	PieceToMove Piece

	// Optional disambiguation: 0 when absent, otherwise a 1-based file or rank.
	FromFile int
	FromRank int

	// Whether the token carries a capture marker.
	Capture bool

	// Destination square.
	To Coordinate

	// Check suffix, if any.
	CheckStatus CheckStatus
}

// MatchesOrigin reports whether from agrees with the move's disambiguation.
func (m *Move) MatchesOrigin(from Coordinate) bool {
	if m.FromFile != 0 && from.File != m.FromFile {
		return false
	}
	if m.FromRank != 0 && from.Rank != m.FromRank {
		return false
	}
	return true
}
