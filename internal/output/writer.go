package output

import (
	"io"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (PGN, JSON).
type GameWriter interface {
	// WriteGame writes a single game. final is the position replay
	// reached, or nil when the game was not replayed.
	WriteGame(game *chess.Game, final *engine.GameState) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer selected by cfg.Output.JSONFormat.
func NewGameWriter(w io.Writer, cfg *config.Config) GameWriter {
	if cfg.Output.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewPGNWriter(w, cfg)
}

// PGNWriter writes games as PGN text.
type PGNWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, cfg *config.Config) *PGNWriter {
	return &PGNWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(game *chess.Game, final *engine.GameState) error {
	OutputGame(pw.w, game, final, pw.cfg)
	return nil
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	games  []*JSONGame
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:   w,
		cfg: cfg,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(game *chess.Game, final *engine.GameState) error {
	jsonGame := GameToJSON(game, final, jw.cfg)
	if jw.single {
		return encodeIndented(jw, jsonGame)
	}
	jw.games = append(jw.games, jsonGame)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}

	err := encodeIndented(jw, &JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
