package matching

import (
	"bufio"
	"io"
	"strings"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// VariationMatcher matches games against move sequences and against
// sequences of positions.
type VariationMatcher struct {
	// Anywhere lets a move sequence match at any point of the game
	// rather than only as its opening.
	Anywhere bool

	moveSequences [][]string
	// Piece placements the game must pass through, in order
	positionSequences [][]string
}

// NewVariationMatcher creates a matcher with no sequences.
func NewVariationMatcher() *VariationMatcher {
	return &VariationMatcher{}
}

// LoadMoves reads one move sequence per line, such as "1. e4 e5 2. Nf3".
// Blank lines and lines starting with # are skipped.
func (vm *VariationMatcher) LoadMoves(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		vm.AddMoveSequence(parseMoveSequence(line))
	}
	return scanner.Err()
}

// LoadPositions reads sequences of FEN positions, one per line, with a
// blank line between sequences. Only the piece placement of each FEN is
// compared.
func (vm *VariationMatcher) LoadPositions(r io.Reader) error {
	var current []string
	flush := func() {
		if len(current) > 0 {
			vm.positionSequences = append(vm.positionSequences, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
		default:
			state, err := engine.DecodeFEN(line)
			if err != nil {
				return errors.Wrapf(err, "line %d", lineNum)
			}
			current = append(current, placement(state))
		}
	}
	flush()
	return scanner.Err()
}

// AddMoveSequence adds a move sequence to match. Empty sequences are
// ignored.
func (vm *VariationMatcher) AddMoveSequence(moves []string) {
	if len(moves) > 0 {
		vm.moveSequences = append(vm.moveSequences, moves)
	}
}

// HasCriteria returns true if any sequences are set.
func (vm *VariationMatcher) HasCriteria() bool {
	return len(vm.moveSequences) > 0 || len(vm.positionSequences) > 0
}

// NeedsReplay reports whether position sequences are set.
func (vm *VariationMatcher) NeedsReplay() bool {
	return len(vm.positionSequences) > 0
}

// MatchGame reports whether game contains any of the move sequences or
// passes through any of the position sequences when replayed from start.
// A matcher with no sequences passes every game.
func (vm *VariationMatcher) MatchGame(game *chess.Game, start *engine.GameState) bool {
	if !vm.HasCriteria() {
		return true
	}
	for _, seq := range vm.moveSequences {
		if vm.matchMoveSequence(game.Moves, seq) {
			return true
		}
	}
	if vm.NeedsReplay() && start != nil {
		placements := replayPlacements(game, start)
		for _, seq := range vm.positionSequences {
			if matchPositionSequence(placements, seq) {
				return true
			}
		}
	}
	return false
}

// matchMoveSequence checks for seq as a contiguous run of moves: at the
// start of the game, or anywhere when Anywhere is set.
func (vm *VariationMatcher) matchMoveSequence(moves, seq []string) bool {
	last := 0
	if vm.Anywhere {
		last = len(moves) - len(seq)
	}
	for offset := 0; offset <= last && offset+len(seq) <= len(moves); offset++ {
		if sameMoves(moves[offset:offset+len(seq)], seq) {
			return true
		}
	}
	return false
}

func sameMoves(a, b []string) bool {
	for i := range a {
		if normalizeMove(a[i]) != normalizeMove(b[i]) {
			return false
		}
	}
	return true
}

// replayPlacements lists the piece placement of the start position and
// after each move, stopping at the first move that does not apply.
func replayPlacements(game *chess.Game, start *engine.GameState) []string {
	state := start.Copy()
	placements := []string{placement(state)}
	for _, token := range game.Moves {
		if state.ApplySAN(token) != nil {
			break
		}
		placements = append(placements, placement(state))
	}
	return placements
}

// matchPositionSequence checks that placements visits every entry of seq
// in order, not necessarily on consecutive plies.
func matchPositionSequence(placements, seq []string) bool {
	i := 0
	for _, p := range placements {
		if p == seq[i] {
			i++
			if i == len(seq) {
				return true
			}
		}
	}
	return false
}

// parseMoveSequence splits a line of moves into move texts, dropping move
// numbers such as "1." and "3...".
func parseMoveSequence(line string) []string {
	var moves []string
	for _, part := range strings.Fields(line) {
		if strings.HasSuffix(part, ".") {
			continue
		}
		if _, move, ok := strings.Cut(part, "..."); ok {
			part = move
		} else if _, move, ok := strings.Cut(part, "."); ok {
			part = move
		}
		if part != "" {
			moves = append(moves, part)
		}
	}
	return moves
}

// normalizeMove drops check marks and annotation glyphs.
func normalizeMove(text string) string {
	return strings.TrimRight(strings.TrimSpace(text), "+#!?")
}

func placement(state *engine.GameState) string {
	fen, _, _ := strings.Cut(state.FEN(), " ")
	return fen
}
