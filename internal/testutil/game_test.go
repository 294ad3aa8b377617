package testutil

import (
	"testing"

	"github.com/lgbarn/chesswrapper-go/internal/engine"
)

func TestParseTestGame(t *testing.T) {
	tests := []struct {
		name      string
		pgn       string
		wantMoves []string
		wantWhite string
		wantFEN   string
	}{
		{
			name: "tags and moves",
			pgn: `[White "Ann"]
[Black "Bob"]

1. e4 e5 2. Nf3 1-0`,
			wantMoves: []string{"e4", "e5", "Nf3"},
			wantWhite: "Ann",
		},
		{
			name: "setup position",
			pgn: `[FEN "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1"]

1. O-O-O Kd7 *`,
			wantMoves: []string{"O-O-O", "Kd7"},
			wantFEN:   "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1",
		},
		{
			name:      "line comment",
			pgn:       "1. d4 d5 ; queen's gambit next\n2. c4 *",
			wantMoves: []string{"d4", "d5", "c4"},
		},
		{name: "empty", pgn: ""},
		{name: "whitespace only", pgn: "   \n\t  "},
		{name: "white move only before next number", pgn: "1. e4 2. Nf3 Nc6"},
		{name: "tags without moves", pgn: `[Event "x"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := ParseTestGame(tt.pgn)
			if tt.wantMoves == nil {
				AssertNil(t, game)
				return
			}
			if game == nil {
				t.Fatal("ParseTestGame() returned nil")
			}
			AssertEqual(t, game.Moves, tt.wantMoves)
			AssertEqual(t, game.White(), tt.wantWhite)
			AssertEqual(t, game.FEN(), tt.wantFEN)
		})
	}
}

func TestParseTestGames(t *testing.T) {
	games := MustParseGames(t, `[Event "A"]

1. e4 e5 *

[Event "B"]

1. d4 {a comment
[%clk 0:01:00]
spanning lines} d5 *`)
	AssertEqual(t, len(games), 2)
	AssertEqual(t, games[1].GetTag("Event"), "B")
	AssertEqual(t, games[1].Moves, []string{"d4", "d5"})

	// One bad game drops the whole batch.
	AssertNil(t, ParseTestGames("1. e4 e5 *\n\n[Event \"bad\"]\n\n1. e4 2. d4 d5 *"))
}

// TestMustParseGame replays a fixture to a known position, and checks that
// a fixture that does not parse is fatal.
func TestMustParseGame(t *testing.T) {
	game := MustParseGame(t, "1. e4 c5 2. Nf3 d6 *")
	state := engine.NewInitialState()
	_, err := engine.Replay(state, game.Moves)
	AssertNoError(t, err)
	AssertFEN(t, state, "rnbqkbnr/pp2pppp/3p4/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3")

	rec := &recorder{}
	AssertNil(t, MustParseGame(rec, "1. Nf3 2. c4"))
	AssertTrue(t, rec.fatal)
	AssertContains(t, lastFailure(t, rec), "failed to parse test game")

	rec = &recorder{}
	AssertNil(t, MustParseGames(rec, ""))
	AssertTrue(t, rec.fatal)
}
