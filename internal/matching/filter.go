package matching

import (
	"bufio"
	"io"
	"strings"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/hashing"
)

// GameFilter combines tag, final position, material and variation
// criteria. A game passes when its tags match, replay ended on one of the
// final positions if any were given, it reached every material balance,
// and it matches one of the variations if any were given.
type GameFilter struct {
	Tags       *TagMatcher
	Variations *VariationMatcher
	// StartFEN is the position games without a FEN tag start from.
	StartFEN string

	positions map[uint64]string
	material  []*MaterialMatcher
}

// NewGameFilter creates a filter that passes every game.
func NewGameFilter() *GameFilter {
	return &GameFilter{
		Tags:       NewTagMatcher(),
		Variations: NewVariationMatcher(),
		StartFEN:   engine.InitialFEN,
		positions:  make(map[uint64]string),
	}
}

// LoadCriteria reads one criterion per line: `FEN "..."` lines add a final
// position, anything else goes to ParseCriterion. The first bad line stops
// loading.
func (gf *GameFilter) LoadCriteria(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		var err error
		if rest, ok := strings.CutPrefix(line, "FEN "); ok {
			err = gf.AddFinalPosition(strings.Trim(strings.TrimSpace(rest), `"`))
		} else {
			err = gf.Tags.ParseCriterion(line)
		}
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNum)
		}
	}
	return scanner.Err()
}

// AddPlayer matches a name against White or Black, by sound when soundex is
// set and by substring otherwise.
func (gf *GameFilter) AddPlayer(name string, soundex bool) {
	op := OpContains
	if soundex {
		op = OpSoundex
	}
	_ = gf.Tags.AddCriterion(playerTag, name, op) // only OpRegex can fail
}

// AddTag adds a substring criterion on one tag.
func (gf *GameFilter) AddTag(tagName, value string) {
	_ = gf.Tags.AddCriterion(tagName, value, OpContains) // only OpRegex can fail
}

// AddResult requires an exact Result tag.
func (gf *GameFilter) AddResult(result string) {
	_ = gf.Tags.AddCriterion("Result", result, OpEqual) // only OpRegex can fail
}

// AddFinalPosition adds a position replay must end on. Clocks in fen are
// ignored.
func (gf *GameFilter) AddFinalPosition(fen string) error {
	state, err := engine.DecodeFEN(fen)
	if err != nil {
		return err
	}
	gf.positions[hashing.PositionHash(state)] = fen
	return nil
}

// AddMaterial requires that some position of the game holds the material
// of pattern; see NewMaterialMatcher.
func (gf *GameFilter) AddMaterial(pattern string, exact bool) error {
	mm, err := NewMaterialMatcher(pattern, exact)
	if err != nil {
		return err
	}
	gf.material = append(gf.material, mm)
	return nil
}

// Material returns the material criteria in the order added.
func (gf *GameFilter) Material() []*MaterialMatcher {
	return gf.material
}

// NeedsReplay reports whether final position criteria are present. The
// material and position sequence criteria replay games themselves.
func (gf *GameFilter) NeedsReplay() bool {
	return len(gf.positions) > 0
}

// HasCriteria returns true if any filter criteria are set.
func (gf *GameFilter) HasCriteria() bool {
	return gf.Tags.CriteriaCount() > 0 || gf.NeedsReplay() ||
		len(gf.material) > 0 || gf.Variations.HasCriteria()
}

// MatchGame checks game, and the position its replay reached (nil when it
// was not replayed), against the filter.
func (gf *GameFilter) MatchGame(game *chess.Game, final *engine.GameState) bool {
	if !gf.Tags.MatchGame(game) {
		return false
	}
	if gf.NeedsReplay() {
		if final == nil {
			return false
		}
		if _, ok := gf.positions[hashing.PositionHash(final)]; !ok {
			return false
		}
	}
	if len(gf.material) == 0 && !gf.Variations.HasCriteria() {
		return true
	}

	start, err := gf.startState(game)
	if err != nil {
		return false
	}
	for _, mm := range gf.material {
		if !mm.MatchGame(game, start) {
			return false
		}
	}
	return gf.Variations.MatchGame(game, start)
}

// startState decodes the game's FEN tag, or StartFEN without one.
func (gf *GameFilter) startState(game *chess.Game) (*engine.GameState, error) {
	fen := game.FEN()
	if fen == "" {
		fen = gf.StartFEN
	}
	return engine.DecodeFEN(fen)
}
