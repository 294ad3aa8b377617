// moves.go - The -moves list: piece:square moves and SAN tokens
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/server"
)

// listMove is one entry of a -moves list. An entry written "N:f3" names a
// piece letter and destination (prefix the square with x to capture en
// passant, as in "p:xd6"); anything else is a SAN token.
type listMove struct {
	text    string
	letter  byte
	square  string
	capture bool
	san     bool
}

// parseMoveList splits a comma-separated -moves value.
func parseMoveList(text string) ([]listMove, error) {
	var moves []listMove
	for _, field := range strings.Split(text, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		letter, square, found := strings.Cut(field, ":")
		if !found {
			moves = append(moves, listMove{text: field, san: true})
			continue
		}
		if len(letter) != 1 {
			return nil, fmt.Errorf("move %q: piece must be one letter: %w", field, errors.ErrFormat)
		}
		move := listMove{text: field, letter: letter[0], square: square}
		if strings.HasPrefix(square, "x") {
			move.square = square[1:]
			move.capture = true
		}
		moves = append(moves, move)
	}
	return moves, nil
}

// applyMoveList applies moves in order. A failure names the 1-based ply and
// leaves state at the position before it.
func applyMoveList(state *engine.GameState, moves []listMove) error {
	for i, move := range moves {
		var err error
		if move.san {
			err = state.ApplySAN(move.text)
		} else {
			err = state.ApplyMove(move.letter, move.square, move.capture)
		}
		if err != nil {
			var moveErr *errors.MoveError
			if errors.As(err, &moveErr) {
				moveErr.PlyNum = i + 1
				moveErr.Token = move.text
			}
			return err
		}
	}
	return nil
}

// runMoveList applies list to cfg.StartFEN and writes the resulting
// position to w as a FEN line, or as a JSON state when JSON output is on.
func runMoveList(cfg *config.Config, list string, w io.Writer) error {
	moves, err := parseMoveList(list)
	if err != nil {
		return err
	}
	state, err := engine.DecodeFEN(cfg.StartFEN)
	if err != nil {
		return err
	}
	if err := applyMoveList(state, moves); err != nil {
		return err
	}
	cfg.Logf(2, "applied %d move(s)\n", len(moves))

	if cfg.Output.JSONFormat {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(server.NewStateView(state))
	}
	_, err = fmt.Fprintln(w, state.FEN())
	return err
}
