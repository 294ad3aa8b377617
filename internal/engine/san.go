package engine

import (
	"fmt"
	"regexp"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

var (
	// sanPattern splits a piece or pawn move: piece letter, from-file,
	// from-rank, capture marker, destination, check suffix.
	sanPattern = regexp.MustCompile(`^([KQRBN])?([a-h])?([1-8])?([xX:])?([a-h][1-8])([+#])?$`)

	// castlePattern matches castling written with letter O or digit 0.
	castlePattern = regexp.MustCompile(`^([O0]-[O0])(-[O0])?([+#])?$`)
)

// ParseSAN splits a SAN token into a chess.Move. Promotion suffixes and
// annotation glyphs are not accepted.
func ParseSAN(token string) (*chess.Move, error) {
	if m := castlePattern.FindStringSubmatch(token); m != nil {
		move := &chess.Move{Text: token, Castle: chess.Kingside, CheckStatus: checkStatus(m[3])}
		if m[2] != "" {
			move.Castle = chess.Queenside
		}
		return move, nil
	}

	m := sanPattern.FindStringSubmatch(token)
	if m == nil {
		return nil, fmt.Errorf("SAN token %q: %w", token, errors.ErrFormat)
	}

	move := &chess.Move{
		Text:        token,
		PieceToMove: chess.Pawn,
		Capture:     m[4] != "",
		CheckStatus: checkStatus(m[6]),
	}
	if m[1] != "" {
		move.PieceToMove = chess.PieceTypeFromLetter(m[1][0])
	}
	if m[2] != "" {
		move.FromFile = int(m[2][0]-chess.ColBase) + 1
	}
	if m[3] != "" {
		move.FromRank = int(m[3][0]-chess.RankBase) + 1
	}
	// The pattern guarantees a well-formed square.
	move.To, _ = chess.SquareToCoord(m[5])
	return move, nil
}

func checkStatus(suffix string) chess.CheckStatus {
	switch suffix {
	case "+":
		return chess.Check
	case "#":
		return chess.Checkmate
	}
	return chess.NoCheck
}

// ApplySAN resolves a SAN token against the state and applies it. Castling
// tokens go through Castle; everything else through the same path as
// ApplyMove, with any file or rank disambiguation restricting the origin.
func (s *GameState) ApplySAN(token string) error {
	move, err := ParseSAN(token)
	if err != nil {
		return &errors.MoveError{Err: err, Token: token}
	}

	switch move.Castle {
	case chess.Kingside:
		err = s.Castle(true)
	case chess.Queenside:
		err = s.Castle(false)
	default:
		var filter func(chess.Coordinate) bool
		if move.FromFile != 0 || move.FromRank != 0 {
			filter = move.MatchesOrigin
		}
		err = s.applyPieceMove(move.PieceToMove, move.To, move.Capture, filter)
	}
	if err != nil {
		return withToken(err, token)
	}
	return nil
}

// Replay applies tokens to state in order. It returns the number of plies
// applied; on failure the error is a *errors.MoveError naming the 1-based
// ply that failed, and state holds the position before that ply.
func Replay(state *GameState, tokens []string) (int, error) {
	for i, token := range tokens {
		if err := state.ApplySAN(token); err != nil {
			var moveErr *errors.MoveError
			if errors.As(err, &moveErr) {
				moveErr.PlyNum = i + 1
			}
			return i, err
		}
	}
	return len(tokens), nil
}

// withToken records token on the MoveError inside err, adding one if needed.
func withToken(err error, token string) error {
	var moveErr *errors.MoveError
	if errors.As(err, &moveErr) {
		moveErr.Token = token
		return err
	}
	return &errors.MoveError{Err: err, Token: token}
}
