package worker

import (
	"github.com/lgbarn/chesswrapper-go/internal/engine"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/parser"
)

// GameProcessor returns a ProcessFunc that tokenizes each item and, when
// replay is set, resolves its moves from the game's FEN tag or startFEN.
// Each call owns its GameState, so the function is safe for any number of
// workers.
func GameProcessor(startFEN string, replay bool) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		result := ProcessResult{Index: item.Index, Source: item.Source}
		gameNum := item.Index + 1

		game, err := parser.Parse(item.Text)
		if err != nil {
			result.Err = parser.WithGameNumber(err, gameNum)
			return result
		}
		result.Game = game
		if !replay {
			return result
		}

		result.InitialFEN = startFEN
		if tagged := game.FEN(); tagged != "" {
			result.InitialFEN = tagged
		}
		state, err := engine.DecodeFEN(result.InitialFEN)
		if err != nil {
			result.Err = errors.Wrapf(err, "game %d", gameNum)
			return result
		}

		result.State = state
		result.Plies, err = engine.Replay(state, game.Moves)
		if err != nil {
			result.Err = errors.Wrapf(err, "game %d", gameNum)
		}
		return result
	}
}
