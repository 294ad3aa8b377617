package parser

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeInput converts raw PGN bytes to a string. Valid UTF-8 is used as
// is, minus any byte order mark; anything else is read as ISO-8859-1, the
// character set of the PGN standard.
func DecodeInput(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		// Every byte has an ISO-8859-1 mapping.
		return string(data)
	}
	return string(decoded)
}

// SplitGames splits the text of a PGN file into one string per game. A new
// game starts at a tag line that follows movetext. Lines inside a {}
// comment never start a game, even when they begin with "[". Blank chunks
// are dropped.
func SplitGames(text string) []string {
	var games []string
	var current strings.Builder
	sawMoves := false
	inComment := false

	flush := func() {
		if chunk := strings.TrimSpace(current.String()); chunk != "" {
			games = append(games, chunk)
		}
		current.Reset()
		sawMoves = false
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case inComment:
			inComment = commentOpenAfter(line, true)
		case strings.HasPrefix(trimmed, "["):
			if sawMoves {
				flush()
			}
		case trimmed != "" && !strings.HasPrefix(trimmed, "%"):
			sawMoves = true
			inComment = commentOpenAfter(line, false)
		}
		current.WriteString(line)
	}
	flush()
	return games
}

// commentOpenAfter reports whether a {} comment is still open at the end
// of a movetext line. PGN comments do not nest, and a ';' outside braces
// comments out the rest of the line.
func commentOpenAfter(line string, open bool) bool {
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case open:
			if c == '}' {
				open = false
			}
		case c == '{':
			open = true
		case c == ';':
			return false
		}
	}
	return open
}

// ParseAll reads every game from r. The first failure is returned as a
// *errors.ParseError carrying the 1-based game number, with no games.
func ParseAll(r io.Reader) ([]*chess.Game, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading PGN input")
	}

	texts := SplitGames(DecodeInput(data))
	games := make([]*chess.Game, 0, len(texts))
	for i, text := range texts {
		game, err := Parse(text)
		if err != nil {
			return nil, WithGameNumber(err, i+1)
		}
		games = append(games, game)
	}
	return games, nil
}

// WithGameNumber records gameNum on the ParseError inside err, adding one
// if needed.
func WithGameNumber(err error, gameNum int) error {
	var parseErr *errors.ParseError
	if errors.As(err, &parseErr) {
		parseErr.GameNum = gameNum
		return err
	}
	return &errors.ParseError{Err: err, GameNum: gameNum}
}
