package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// MaterialMatcher matches games that reach a given material balance.
type MaterialMatcher struct {
	// Pattern like "QR:qrr" means white has Q+R, black has Q+2R
	pattern    string
	exactMatch bool
	counts     map[chess.Piece]int // keyed by coloured piece
}

// NewMaterialMatcher parses a pattern of the form "QRN:qrn": White's
// pieces in upper case, a colon, Black's in lower case. Either side may
// be empty. With exact set, a position must hold exactly the listed
// pieces; otherwise at least them.
func NewMaterialMatcher(pattern string, exact bool) (*MaterialMatcher, error) {
	mm := &MaterialMatcher{
		pattern:    pattern,
		exactMatch: exact,
		counts:     make(map[chess.Piece]int),
	}
	if err := mm.parsePattern(pattern); err != nil {
		return nil, err
	}
	return mm, nil
}

func (mm *MaterialMatcher) parsePattern(pattern string) error {
	white, black, found := strings.Cut(pattern, ":")
	if !found || strings.Contains(black, ":") {
		return fmt.Errorf("material %q: want WHITE:black: %w", pattern, errors.ErrFormat)
	}
	if err := mm.parseSide(white, chess.White); err != nil {
		return err
	}
	return mm.parseSide(black, chess.Black)
}

// parseSide counts the letters of one side, which must all be in that
// side's case.
func (mm *MaterialMatcher) parseSide(letters string, colour chess.Colour) error {
	for i := 0; i < len(letters); i++ {
		piece := chess.PieceFromLetter(letters[i])
		if piece == chess.Empty || chess.ExtractColour(piece) != colour {
			return fmt.Errorf("material %q: letter %q is not a %s piece: %w",
				mm.pattern, letters[i], colour, errors.ErrValidation)
		}
		mm.counts[piece]++
	}
	return nil
}

// MatchGame replays game from start and reports whether any position on
// the way, the start included, matches. Replay stops quietly at the first
// move that does not apply.
func (mm *MaterialMatcher) MatchGame(game *chess.Game, start *engine.GameState) bool {
	state := start.Copy()
	if mm.matchPosition(state.Position) {
		return true
	}
	for _, token := range game.Moves {
		if state.ApplySAN(token) != nil {
			return false
		}
		if mm.matchPosition(state.Position) {
			return true
		}
	}
	return false
}

// matchPosition compares the piece counts of pos with the pattern.
func (mm *MaterialMatcher) matchPosition(pos *chess.Position) bool {
	for _, piece := range chess.AllColouredPieces {
		have := len(pos.Locations(piece))
		want := mm.counts[piece]
		if have < want || (mm.exactMatch && have != want) {
			return false
		}
	}
	return true
}

// String returns the pattern, marked when the match is exact.
func (mm *MaterialMatcher) String() string {
	if mm.exactMatch {
		return "=" + mm.pattern
	}
	return mm.pattern
}
