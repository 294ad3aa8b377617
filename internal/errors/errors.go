// Package errors provides the error kinds used throughout chesswrapper.
// Every failure carries exactly one of the sentinel kinds below, possibly
// wrapped in a context type, so callers can classify it with errors.Is()
// and inspect the context with errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. The set is closed: nothing in the module returns
// an error that does not wrap one of these.
var (
	// ErrFormat indicates malformed text: wrong field count, bad character
	// or a token of the wrong shape.
	ErrFormat = errors.New("format error")

	// ErrRange indicates a rank, file or coordinate outside 1-8.
	ErrRange = errors.New("range error")

	// ErrValidation indicates a well-formed but invalid value, such as an
	// unknown colour, piece or castling letter.
	ErrValidation = errors.New("validation error")

	// ErrLookup indicates that no indexed piece satisfies the movement
	// rules for a requested move.
	ErrLookup = errors.New("lookup error")

	// ErrCapacity indicates that a bounded store, such as the server's
	// session table, has no room left.
	ErrCapacity = errors.New("capacity error")
)

// Kinds lists the sentinel error kinds in a stable order.
var Kinds = []error{ErrFormat, ErrRange, ErrValidation, ErrLookup, ErrCapacity}

// Kind returns the sentinel kind wrapped by err, or nil if err carries none.
func Kind(err error) error {
	for _, k := range Kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Is and As are re-exported so callers importing this package under the
// name errors keep access to the standard helpers.
var (
	Is = errors.Is
	As = errors.As
)

// FENError reports which FEN field could not be decoded.
type FENError struct {
	Err   error  // The underlying kind
	Field string // Field name, e.g. "placement" or "castling"
	Value string // Offending text (may be empty)
}

// Error returns the field, value and kind.
func (e *FENError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("FEN %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("FEN %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FENError) Unwrap() error {
	return e.Err
}

// MoveError wraps a move-application failure with game context, including
// ply position, the moved piece and the target square.
type MoveError struct {
	Err    error  // The underlying error
	PlyNum int    // 1-based ply (0 if not applicable)
	Token  string // SAN token being applied (if any)
	Piece  string // Piece letter (if known)
	Square string // Destination square (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.Token != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Token))
	}
	if e.Piece != "" || e.Square != "" {
		parts = append(parts, fmt.Sprintf("%s to %s", e.Piece, e.Square))
	}

	context := strings.Join(parts, ", ")
	if context == "" {
		context = "move"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a PGN parsing error with location context.
type ParseError struct {
	Err      error  // The underlying error
	GameNum  int    // 1-based game number in the input (0 if unknown)
	MoveNum  int    // Move number being scanned (0 if not applicable)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.GameNum > 0 {
		parts = append(parts, fmt.Sprintf("game %d", e.GameNum))
	}
	if e.MoveNum > 0 {
		parts = append(parts, fmt.Sprintf("move %d", e.MoveNum))
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
