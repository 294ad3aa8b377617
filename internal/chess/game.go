package chess

// Game holds what the PGN tokenizer extracts from one game: its tag pairs
// and its move tokens in play order. Tokens are SAN strings, not resolved
// moves.
type Game struct {
	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	Tags map[string]string

	// Moves are the SAN tokens of the game, White's first.
	Moves []string
}

// NewGame creates a new empty game.
func NewGame() *Game {
	return &Game{
		Tags: make(map[string]string),
	}
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.Tags[name]
}

// SetTag sets a tag value.
func (g *Game) SetTag(name, value string) {
	g.ensureTags()
	g.Tags[name] = value
}

// HasTag returns true if the tag is present.
func (g *Game) HasTag(name string) bool {
	_, ok := g.Tags[name]
	return ok
}

// ensureTags initializes the Tags map if it is nil.
func (g *Game) ensureTags() {
	if g.Tags == nil {
		g.Tags = make(map[string]string)
	}
}

// White returns the White player name.
func (g *Game) White() string {
	return g.GetTag("White")
}

// Black returns the Black player name.
func (g *Game) Black() string {
	return g.GetTag("Black")
}

// Result returns the game result.
func (g *Game) Result() string {
	return g.GetTag("Result")
}

// Event returns the event name.
func (g *Game) Event() string {
	return g.GetTag("Event")
}

// Date returns the date string.
func (g *Game) Date() string {
	return g.GetTag("Date")
}

// FEN returns the FEN string if present.
func (g *Game) FEN() string {
	return g.GetTag("FEN")
}

// PlyCount returns the number of half-moves in the game.
func (g *Game) PlyCount() int {
	return len(g.Moves)
}

// AppendMove adds a move token to the end of the game.
func (g *Game) AppendMove(token string) {
	g.Moves = append(g.Moves, token)
}
