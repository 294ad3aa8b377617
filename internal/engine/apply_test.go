package engine

import (
	"testing"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/testutil"
)

func mustDecode(t *testing.T, fen string) *GameState {
	t.Helper()
	state, err := DecodeFEN(fen)
	if err != nil {
		t.Fatalf("DecodeFEN(%q) error = %v", fen, err)
	}
	return state
}

func TestApplyMove(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		piece   byte
		square  string
		capture bool
		wantFEN string
	}{
		{
			name:    "1.e4",
			fen:     InitialFEN,
			piece:   'p',
			square:  "e4",
			wantFEN: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name:    "1.Nf3",
			fen:     InitialFEN,
			piece:   'N',
			square:  "f3",
			wantFEN: "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1",
		},
		{
			name:    "black reply increments move number",
			fen:     "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			piece:   'p',
			square:  "c5",
			wantFEN: "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		},
		{
			name:    "side to move decides colour",
			fen:     "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			piece:   'N',
			square:  "f6",
			wantFEN: "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1 2",
		},
		{
			name:    "single pawn step clears en passant target",
			fen:     "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			piece:   'p',
			square:  "a6",
			wantFEN: "rnbqkbnr/1ppppppp/p7/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		},
		{
			name:    "capture resets clock",
			fen:     "4k3/8/8/3p4/4P3/8/8/4K3 w - - 7 20",
			piece:   'p',
			square:  "d5",
			wantFEN: "4k3/8/8/3P4/8/8/8/4K3 b - - 0 20",
		},
		{
			name:    "king move clears both rights",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			piece:   'k',
			square:  "e2",
			wantFEN: "r3k2r/8/8/8/8/8/4K3/R6R b kq - 1 1",
		},
		{
			name:    "rook leaving a1 clears white queenside",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			piece:   'r',
			square:  "a5",
			wantFEN: "r3k2r/8/8/R7/8/8/8/4K2R b Kkq - 1 1",
		},
		{
			name:    "rook leaving h8 clears black kingside",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			piece:   'r',
			square:  "h5",
			wantFEN: "r3k3/8/8/7r/8/8/8/R3K2R w KQq - 1 2",
		},
		{
			name:    "capturing a rook on its corner clears the opponent right",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			piece:   'r',
			square:  "h8",
			capture: true,
			wantFEN: "r3k2R/8/8/8/8/8/8/R3K3 b Qq - 0 1",
		},
		{
			name:    "en passant with capture hint",
			fen:     "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 33",
			piece:   'p',
			square:  "d6",
			capture: true,
			wantFEN: "4k3/8/3P4/8/8/8/8/4K3 b - - 0 33",
		},
		{
			name:    "capture hint ignored on occupied square",
			fen:     "4k3/8/8/3p4/4P3/8/8/4K3 w - - 3 20",
			piece:   'p',
			square:  "d5",
			capture: true,
			wantFEN: "4k3/8/8/3P4/8/8/8/4K3 b - - 0 20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustDecode(t, tt.fen)
			if err := state.ApplyMove(tt.piece, tt.square, tt.capture); err != nil {
				t.Fatalf("ApplyMove(%c, %s) error = %v", tt.piece, tt.square, err)
			}
			testutil.AssertEqual(t, state.FEN(), tt.wantFEN)
		})
	}
}

func TestApplyMoveInitialPawnAdvance(t *testing.T) {
	state := NewInitialState()
	if err := state.ApplyMove('p', "e4", false); err != nil {
		t.Fatalf("ApplyMove(p, e4) error = %v", err)
	}
	testutil.AssertEqual(t, state.EnPassantSquare(), "e3")
	testutil.AssertEqual(t, state.HalfmoveClock, uint(0))
	testutil.AssertEqual(t, state.ToMove, chess.Black)
	testutil.AssertEqual(t, state.Position.Get(sq("e2")), chess.Empty)
}

func TestApplyMoveErrors(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		piece   byte
		square  string
		capture bool
		kind    error
	}{
		{"unreachable square", InitialFEN, 'n', "f5", false, errors.ErrLookup},
		{"pawn blocked geometry", InitialFEN, 'p', "e5", false, errors.ErrLookup},
		{"no piece of that type", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", 'q', "d4", false, errors.ErrLookup},
		{"unknown piece letter", InitialFEN, 'x', "e4", false, errors.ErrValidation},
		{"bad square", InitialFEN, 'p', "e9", false, errors.ErrFormat},
		{"diagonal pawn without en passant target", "4k3/8/8/3pP3/8/8/8/4K3 w - - 0 33", 'p', "d6", true, errors.ErrLookup},
		{"en passant without hint", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 33", 'p', "d6", false, errors.ErrLookup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustDecode(t, tt.fen)
			before := state.FEN()

			err := state.ApplyMove(tt.piece, tt.square, tt.capture)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("ApplyMove() error = %v; want %v", err, tt.kind)
			}
			var moveErr *errors.MoveError
			if !errors.As(err, &moveErr) {
				t.Errorf("error %v is not a *MoveError", err)
			}
			testutil.AssertFEN(t, state, before, "state changed by failed move")
		})
	}
}

func TestApplyMoveKnightLookup(t *testing.T) {
	state := NewInitialState()
	testutil.AssertNoError(t, state.ApplyMove('n', "f3", false))
	locs := state.Position.Locations(chess.W(chess.Knight))
	testutil.AssertEqual(t, []string{locs[0].String(), locs[1].String()}, []string{"b1", "f3"})

	// Black to move now: the letter resolves to the black knights.
	testutil.AssertErrorIs(t, state.ApplyMove('n', "f5", false), errors.ErrLookup, "ApplyMove(n, f5)")
}

// TestHalfmoveClock plays knights back and forth for 30 plies, then a pawn.
func TestHalfmoveClock(t *testing.T) {
	state := NewInitialState()
	white := []string{"f3", "g1"}
	black := []string{"f6", "g8"}

	for ply := 0; ply < 30; ply++ {
		targets := white
		if ply%2 == 1 {
			targets = black
		}
		square := targets[(ply/2)%2]
		if err := state.ApplyMove('n', square, false); err != nil {
			t.Fatalf("ply %d: ApplyMove(n, %s) error = %v", ply+1, square, err)
		}
	}
	testutil.AssertEqual(t, state.HalfmoveClock, uint(30))
	testutil.AssertEqual(t, state.MoveNumber, uint(16))
	testutil.AssertEqual(t, state.ToMove, chess.White)

	testutil.AssertNoError(t, state.ApplyMove('p', "d4", false))
	testutil.AssertEqual(t, state.HalfmoveClock, uint(0))
}

func TestCopyIsSnapshot(t *testing.T) {
	state := NewInitialState()
	snapshot := state.Copy()

	testutil.AssertNoError(t, state.ApplyMove('p', "e4", false))
	testutil.AssertEqual(t, snapshot.FEN(), InitialFEN)
	testutil.AssertNil(t, snapshot.EnPassant)

	testutil.AssertNoError(t, snapshot.ApplyMove('p', "d4", false))
	testutil.AssertEqual(t, state.EnPassantSquare(), "e3")
}

func TestCastle(t *testing.T) {
	const open = "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R"
	tests := []struct {
		name     string
		fen      string
		kingside bool
		wantFEN  string
	}{
		{"white kingside", open + " w KQkq - 0 1", true, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4RK1 b kq - 1 1"},
		{"white queenside", open + " w KQkq - 0 1", false, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/2KR3R b kq - 1 1"},
		{"black kingside", open + " b KQkq - 0 1", true, "r4rk1/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQ - 1 2"},
		{"black queenside", open + " b KQkq e3 0 1", false, "2kr3r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQ - 1 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustDecode(t, tt.fen)
			testutil.AssertNoError(t, state.Castle(tt.kingside))
			testutil.AssertEqual(t, state.FEN(), tt.wantFEN)
		})
	}

	t.Run("index follows the king and rook", func(t *testing.T) {
		state := mustDecode(t, open+" w KQkq - 0 1")
		testutil.AssertNoError(t, state.Castle(true))
		rooks := state.Position.Locations(chess.W(chess.Rook))
		testutil.AssertEqual(t, []string{rooks[0].String(), rooks[1].String()}, []string{"a1", "f1"})
		testutil.AssertEqual(t, state.Position.Locations(chess.W(chess.King))[0].String(), "g1")
	})
}

func TestCastleErrors(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		kingside bool
		kind     error
	}{
		{"no right", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", true, errors.ErrValidation},
		{"path occupied", InitialFEN, true, errors.ErrLookup},
		{"king not home", "r3k2r/8/8/8/8/8/8/R4K1R w KQkq - 0 1", true, errors.ErrLookup},
		{"rook missing", "r3k2r/8/8/8/8/8/8/4K2R w KQkq - 0 1", false, errors.ErrLookup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustDecode(t, tt.fen)
			before := state.FEN()
			err := state.Castle(tt.kingside)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Castle() error = %v; want %v", err, tt.kind)
			}
			testutil.AssertEqual(t, state.FEN(), before)
		})
	}
}
