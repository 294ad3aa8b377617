package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Are verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrFormat", ErrFormat, ErrFormat},
		{"ErrRange", ErrRange, ErrRange},
		{"ErrValidation", ErrValidation, ErrValidation},
		{"ErrLookup", ErrLookup, ErrLookup},
		{"ErrCapacity", ErrCapacity, ErrCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	for i, a := range Kinds {
		for j, b := range Kinds {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

// TestKind verifies classification through several layers of wrapping.
func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"bare", ErrRange, ErrRange},
		{"fmt wrapped", fmt.Errorf("square: %w", ErrFormat), ErrFormat},
		{"fen error", &FENError{Err: ErrValidation, Field: "side"}, ErrValidation},
		{"move error", Wrap(&MoveError{Err: ErrLookup, PlyNum: 3}, "replay"), ErrLookup},
		{"capacity", fmt.Errorf("session limit reached: %w", ErrCapacity), ErrCapacity},
		{"foreign", errors.New("other"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestMoveError_Error verifies the error message format
func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:    ErrLookup,
				PlyNum: 12,
				Token:  "Nxe5",
				Piece:  "N",
				Square: "e5",
			},
			contains: []string{"ply 12", "Nxe5", "N to e5", "lookup error"},
		},
		{
			name:     "minimal context",
			err:      &MoveError{Err: ErrValidation},
			contains: []string{"move", "validation error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestMoveError_As verifies that errors.As works with MoveError
func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{
		Err:    ErrLookup,
		PlyNum: 24,
		Token:  "O-O-O",
	}

	wrapped := fmt.Errorf("processing failed: %w", moveErr)

	var extractedErr *MoveError
	if !errors.As(wrapped, &extractedErr) {
		t.Fatal("errors.As() could not extract MoveError")
	}
	if extractedErr.PlyNum != 24 {
		t.Errorf("extractedErr.PlyNum = %d, want 24", extractedErr.PlyNum)
	}
	if !errors.Is(wrapped, ErrLookup) {
		t.Error("errors.Is(wrapped, ErrLookup) = false, want true")
	}
}

func TestFENError_Error(t *testing.T) {
	err := &FENError{Err: ErrValidation, Field: "castling", Value: "KX"}
	msg := err.Error()
	for _, s := range []string{"castling", `"KX"`, "validation error"} {
		if !strings.Contains(msg, s) {
			t.Errorf("FENError.Error() = %q, should contain %q", msg, s)
		}
	}

	noValue := (&FENError{Err: ErrFormat, Field: "fields"}).Error()
	if strings.Contains(noValue, `""`) {
		t.Errorf("FENError.Error() = %q, should omit empty value", noValue)
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:      ErrFormat,
		GameNum:  4,
		MoveNum:  17,
		Expected: "move",
		Got:      "end of text",
	}

	msg := err.Error()
	for _, s := range []string{"game 4", "move 17", "expected move, got end of text", "format error"} {
		if !containsIgnoreCase(msg, s) {
			t.Errorf("ParseError.Error() = %q, should contain %q", msg, s)
		}
	}

	if got := (&ParseError{}).Error(); got != "parse error" {
		t.Errorf("empty ParseError.Error() = %q, want %q", got, "parse error")
	}
}

// TestParseError_Unwrap verifies ParseError implements Unwrap
func TestParseError_Unwrap(t *testing.T) {
	parseErr := &ParseError{Err: ErrFormat, GameNum: 1}

	if !errors.Is(parseErr, ErrFormat) {
		t.Error("errors.Is(parseErr, ErrFormat) = false, want true")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrFormat, "parsing FEN string")

	if !errors.Is(wrapped, ErrFormat) {
		t.Error("Wrap should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", wrapped.Error())
	}
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrLookup, "move %d in game %d", 15, 3)

	if !errors.Is(wrapped, ErrLookup) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "move 15") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
