// Package parser splits PGN text into tag pairs and move tokens.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

var (
	// tagPattern matches one [Key "Value"] pair at the start of the text.
	// Inside the value, a backslash escapes the following character.
	tagPattern = regexp.MustCompile(`^\s*\[\s*(\w+)\s*"((?:[^"\\]|\\.)*)"\s*\]\s*`)

	braceComment = regexp.MustCompile(`\{[^}]*\}`)
	lineComment  = regexp.MustCompile(`;[^\n]*`)

	// movePattern finds the next move token. Queenside castling is listed
	// first so O-O-O is not cut short.
	movePattern = regexp.MustCompile(`O-O-O[+#]?|O-O[+#]?|\b[KQRBN]?[a-h1-8]?[xX]?[a-h][1-8][+#]?`)
)

// movesPerNumber is the most tokens taken from one move number.
const movesPerNumber = 2

// Parse extracts the tags and move tokens of a single game.
//
// The tag section is a run of [Key "Value"] pairs; later duplicates
// overwrite earlier ones. The text after it must begin with "1.". Comments
// in braces or after a semicolon are removed, then for each move number the
// text up to the next move number yields at most two tokens. A move number
// followed by another must yield both; the last one may yield fewer, and
// ends the game.
//
// On failure the returned error is a *errors.ParseError wrapping
// errors.ErrFormat and no game is returned.
func Parse(text string) (*chess.Game, error) {
	game := chess.NewGame()

	rest := parseTags(game, text)

	movetext := strings.TrimSpace(rest)
	if !strings.HasPrefix(movetext, "1.") {
		return nil, &errors.ParseError{
			Err:      fmt.Errorf("no movetext section found: %w", errors.ErrFormat),
			Expected: `"1."`,
			Got:      excerpt(movetext),
		}
	}

	movetext = stripComments(movetext)
	if err := scanMoves(game, movetext); err != nil {
		return nil, err
	}
	return game, nil
}

// parseTags consumes the tag section into game and returns the rest.
func parseTags(game *chess.Game, text string) string {
	for {
		m := tagPattern.FindStringSubmatchIndex(text)
		if m == nil {
			return text
		}
		game.SetTag(text[m[2]:m[3]], unescapeTagValue(text[m[4]:m[5]]))
		text = text[m[1]:]
	}
}

// unescapeTagValue turns \" into " and \\ into \. Other backslash
// sequences are kept as written.
func unescapeTagValue(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var sb strings.Builder
	sb.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\\' && i+1 < len(value) && (value[i+1] == '"' || value[i+1] == '\\') {
			i++
			c = value[i]
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func stripComments(movetext string) string {
	movetext = braceComment.ReplaceAllString(movetext, " ")
	return lineComment.ReplaceAllString(movetext, " ")
}

// scanMoves walks the move numbers of movetext in order.
func scanMoves(game *chess.Game, movetext string) error {
	for n := 1; ; n++ {
		marker := strconv.Itoa(n) + "."
		start := strings.Index(movetext, marker)
		if start < 0 {
			return nil
		}
		window := movetext[start+len(marker):]

		hasNext := false
		if end := strings.Index(window, strconv.Itoa(n+1)+"."); end >= 0 {
			window = window[:end]
			hasNext = true
		}

		tokens := findMoves(window)
		if len(tokens) < movesPerNumber && hasNext {
			return &errors.ParseError{
				Err:      fmt.Errorf("move number %d has %d of %d moves: %w", n, len(tokens), movesPerNumber, errors.ErrFormat),
				MoveNum:  n,
				Expected: "move",
				Got:      excerpt(strings.TrimSpace(window)),
			}
		}
		for _, tok := range tokens {
			game.AppendMove(tok)
		}
		if !hasNext {
			return nil
		}
	}
}

// findMoves returns up to two move tokens from window, White's first.
func findMoves(window string) []string {
	var tokens []string
	pos := 0
	for len(tokens) < movesPerNumber {
		loc := movePattern.FindStringIndex(window[pos:])
		if loc == nil {
			break
		}
		tokens = append(tokens, window[pos+loc[0]:pos+loc[1]])
		pos += loc[1]
	}
	return tokens
}

// excerpt shortens text for error messages.
func excerpt(text string) string {
	const limit = 20
	if text == "" {
		return "end of input"
	}
	if len(text) > limit {
		return strconv.Quote(text[:limit] + "...")
	}
	return strconv.Quote(text)
}
