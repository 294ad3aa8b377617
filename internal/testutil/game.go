package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/parser"
)

// ParseTestGame returns the first game of pgn, or nil when the text holds
// no games or any game in it fails to parse.
func ParseTestGame(pgn string) *chess.Game {
	if games := ParseTestGames(pgn); len(games) > 0 {
		return games[0]
	}
	return nil
}

// ParseTestGames returns every game of pgn, or nil if any fails to parse.
func ParseTestGames(pgn string) []*chess.Game {
	games, err := parser.ParseAll(strings.NewReader(pgn))
	if err != nil || len(games) == 0 {
		return nil
	}
	return games
}

// MustParseGame is ParseTestGame for fixtures: a PGN that does not parse
// is fatal to the test.
func MustParseGame(t testing.TB, pgn string) *chess.Game {
	t.Helper()
	game := ParseTestGame(pgn)
	if game == nil {
		t.Fatalf("failed to parse test game:\n%s", pgn)
	}
	return game
}

// MustParseGames is the multi-game form of MustParseGame.
func MustParseGames(t testing.TB, pgn string) []*chess.Game {
	t.Helper()
	games := ParseTestGames(pgn)
	if len(games) == 0 {
		t.Fatalf("failed to parse any games from PGN:\n%s", pgn)
	}
	return games
}
