package server

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/hashing"
)

var (
	// ErrSessionNotFound is returned for an unknown game ID.
	ErrSessionNotFound = fmt.Errorf("game not found: %w", errors.ErrLookup)

	// ErrSessionLimit is returned when the store is full.
	ErrSessionLimit = fmt.Errorf("session limit reached: %w", errors.ErrCapacity)
)

// MoveRequest is one move sent by a client. SAN, when set, takes
// precedence over Piece and Square.
type MoveRequest struct {
	Piece   string `json:"piece,omitempty"`
	Square  string `json:"square,omitempty"`
	Capture bool   `json:"capture,omitempty"`
	SAN     string `json:"san,omitempty"`
}

// StateView is the JSON form of a game state.
type StateView struct {
	GameID        string            `json:"game_id,omitempty"`
	FEN           string            `json:"fen"`
	ToMove        string            `json:"to_move"`
	Castling      string            `json:"castling"`
	EnPassant     string            `json:"en_passant"`
	HalfmoveClock uint              `json:"halfmove_clock"`
	MoveNumber    uint              `json:"move_number"`
	Hash          string            `json:"hash"`
	Pieces        map[string]string `json:"pieces"`
	Moves         []string          `json:"moves,omitempty"`
}

// NewStateView builds the view of state. Pieces maps occupied squares to
// their FEN letters; Hash is the Zobrist hash, equal for transpositions.
func NewStateView(state *engine.GameState) StateView {
	view := StateView{
		FEN:           state.FEN(),
		ToMove:        "white",
		Castling:      state.Castling.String(),
		EnPassant:     state.EnPassantSquare(),
		HalfmoveClock: state.HalfmoveClock,
		MoveNumber:    state.MoveNumber,
		Hash:          fmt.Sprintf("%016x", hashing.PositionHash(state)),
		Pieces:        make(map[string]string, state.Position.Count()),
	}
	if state.ToMove == chess.Black {
		view.ToMove = "black"
	}
	for rank := 1; rank <= chess.BoardSize; rank++ {
		for file := 1; file <= chess.BoardSize; file++ {
			c := chess.Coordinate{Rank: rank, File: file}
			if piece := state.Position.Get(c); piece != chess.Empty {
				view.Pieces[c.String()] = string(chess.FENLetter(piece))
			}
		}
	}
	return view
}

// Session is one live game. Moves on a session are serialized.
type Session struct {
	ID string

	mu    sync.Mutex
	state *engine.GameState
	moves []string
}

// Apply applies req to the session's state. On error the state is
// unchanged.
func (s *Session) Apply(req MoveRequest) (StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	var text string
	switch {
	case req.SAN != "":
		text = req.SAN
		err = s.state.ApplySAN(req.SAN)
	case len(req.Piece) == 1:
		text = req.Piece + ":" + req.Square
		err = s.state.ApplyMove(req.Piece[0], req.Square, req.Capture)
	default:
		err = fmt.Errorf("move needs san or a one-letter piece, got %q: %w", req.Piece, errors.ErrValidation)
	}
	if err != nil {
		return StateView{}, err
	}

	s.moves = append(s.moves, text)
	return s.viewLocked(), nil
}

// View returns the current state.
func (s *Session) View() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() StateView {
	view := NewStateView(s.state)
	view.GameID = s.ID
	view.Moves = append([]string(nil), s.moves...)
	return view
}

// Store holds the live sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
}

// NewStore creates a store holding at most limit sessions (0 = no limit).
func NewStore(limit int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		limit:    limit,
	}
}

// Create starts a session from fen, or from the initial position when fen
// is empty.
func (st *Store) Create(fen string) (*Session, error) {
	state := engine.NewInitialState()
	if fen != "" {
		var err error
		if state, err = engine.DecodeFEN(fen); err != nil {
			return nil, err
		}
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.limit > 0 && len(st.sessions) >= st.limit {
		return nil, ErrSessionLimit
	}
	sess := &Session{ID: uuid.New().String(), state: state}
	st.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns the session with the given ID.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes the session with the given ID.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
