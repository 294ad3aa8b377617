// Package output writes tokenized games as PGN-style text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator or a line break first
// when something is already on the line.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputGame writes a game to w: its tags, a blank line, the numbered move
// text and the result. When final is non-nil and the config asks for it,
// the final position is written as a comment before the result.
func OutputGame(w io.Writer, game *chess.Game, final *engine.GameState, cfg *config.Config) {
	if outputTags(w, game, cfg) {
		fmt.Fprintln(w)
	}
	outputMoves(w, game, final, cfg)
	fmt.Fprintln(w)
}

// outputTags writes the game tags and reports whether any were written.
func outputTags(w io.Writer, game *chess.Game, cfg *config.Config) bool {
	if cfg.Output.TagFormat == config.NoTags {
		return false
	}

	// Seven tag roster first, filled with "?" when missing.
	for _, tag := range chess.SevenTagRoster {
		value := game.GetTag(tag)
		if value == "" {
			value = "?"
		}
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
	}

	if cfg.Output.TagFormat != config.SevenTagRoster {
		for _, tag := range chess.OrderedTagNames(game.Tags) {
			if !chess.IsSevenTagRosterTag(tag) {
				fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(game.Tags[tag]))
			}
		}
	}
	return true
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// outputMoves writes the move tokens with move numbers, continuing the
// numbering of the game's FEN tag when it has one.
func outputMoves(w io.Writer, game *chess.Game, final *engine.GameState, cfg *config.Config) {
	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))

	moveNum, isWhite := startingMove(game)
	for i, token := range game.Moves {
		if isWhite {
			ow.Write(fmt.Sprintf("%d.", moveNum))
		} else if i == 0 {
			ow.Write(fmt.Sprintf("%d...", moveNum))
		}
		ow.Write(token)

		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}

	if final != nil && cfg.Output.IncludeFEN {
		ow.Write("{" + final.FEN() + "}")
	}
	ow.Write(gameResult(game))
	ow.NewLine()
}

// startingMove returns the move number and side of the game's first move.
func startingMove(game *chess.Game) (uint, bool) {
	if fen := game.FEN(); fen != "" {
		if state, err := engine.DecodeFEN(fen); err == nil {
			return state.MoveNumber, state.ToMove == chess.White
		}
	}
	return 1, true
}

// gameResult returns the Result tag, or "*" when there is none.
func gameResult(game *chess.Game) string {
	if result := game.Result(); result != "" {
		return result
	}
	return "*"
}
