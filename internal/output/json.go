package output

import (
	"encoding/json"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags"`
	Moves      []string          `json:"moves"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	InitialFEN string            `json:"initialFEN,omitempty"`
	FinalFEN   string            `json:"finalFEN,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game, and the position replay reached if any, to
// JSON form. Missing seven tag roster entries are filled with "?".
func GameToJSON(game *chess.Game, final *engine.GameState, cfg *config.Config) *JSONGame {
	jg := &JSONGame{
		Tags:     copyTags(game.Tags, cfg.Output.TagFormat),
		Moves:    game.Moves,
		Result:   gameResult(game),
		PlyCount: game.PlyCount(),
	}
	if jg.Moves == nil {
		jg.Moves = []string{}
	}

	if final != nil {
		jg.InitialFEN = game.FEN()
		if jg.InitialFEN == "" {
			jg.InitialFEN = cfg.StartFEN
		}
		if cfg.Output.IncludeFEN {
			jg.FinalFEN = final.FEN()
		}
	}
	return jg
}

// copyTags copies the tags selected by form.
func copyTags(tags map[string]string, form config.TagOutputForm) map[string]string {
	result := make(map[string]string, len(tags)+len(chess.SevenTagRoster))
	if form == config.NoTags {
		return result
	}
	for _, tag := range chess.SevenTagRoster {
		if value, ok := tags[tag]; ok {
			result[tag] = value
		} else {
			result[tag] = "?"
		}
	}
	if form == config.SevenTagRoster {
		return result
	}
	for k, v := range tags {
		result[k] = v
	}
	return result
}

func encodeIndented(jw *JSONWriter, v interface{}) error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
