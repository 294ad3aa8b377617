// Package testutil holds the assertion and PGN fixture helpers shared by
// the chesswrapper test suites. Helpers take testing.TB so that their own
// failure paths can be exercised with a recording TB.
package testutil

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// FENer is anything with a FEN rendering: *engine.GameState, or a
// *chess.Game carrying a FEN tag.
type FENer interface {
	FEN() string
}

// AssertEqual compares got and want using cmp.Diff and reports differences.
// Structs with unexported fields must be compared directly instead.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t testing.TB, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		fail(t, msgAndArgs, "mismatch (-want +got):\n%s", diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		fail(t, msgAndArgs, "unexpected error: %v", err)
	}
}

// AssertError fails if err is nil when an error was expected.
func AssertError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		fail(t, msgAndArgs, "expected error but got nil")
	}
}

// AssertErrorIs fails unless err wraps kind, one of the errors.Kinds
// sentinels or any other target.
func AssertErrorIs(t testing.TB, err, kind error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, kind) {
		fail(t, msgAndArgs, "error %v does not wrap %v", err, kind)
	}
}

// AssertMoveError fails unless err carries a *errors.MoveError for the
// given ply and token. The MoveError is returned for further checks, or
// nil when there is none.
func AssertMoveError(t testing.TB, err error, ply int, token string, msgAndArgs ...interface{}) *errors.MoveError {
	t.Helper()
	var moveErr *errors.MoveError
	if !errors.As(err, &moveErr) {
		fail(t, msgAndArgs, "error %v is not a *MoveError", err)
		return nil
	}
	if moveErr.PlyNum != ply || moveErr.Token != token {
		fail(t, msgAndArgs, "move error at ply %d token %q; want ply %d token %q",
			moveErr.PlyNum, moveErr.Token, ply, token)
	}
	return moveErr
}

// AssertParseError fails unless err carries a *errors.ParseError for the
// given game and move number. A moveNum of 0 is not checked.
func AssertParseError(t testing.TB, err error, gameNum, moveNum int, msgAndArgs ...interface{}) *errors.ParseError {
	t.Helper()
	var parseErr *errors.ParseError
	if !errors.As(err, &parseErr) {
		fail(t, msgAndArgs, "error %v is not a *ParseError", err)
		return nil
	}
	if parseErr.GameNum != gameNum || (moveNum != 0 && parseErr.MoveNum != moveNum) {
		fail(t, msgAndArgs, "parse error in game %d move %d; want game %d move %d",
			parseErr.GameNum, parseErr.MoveNum, gameNum, moveNum)
	}
	return parseErr
}

// AssertFEN fails unless got renders as the FEN string want.
func AssertFEN(t testing.TB, got FENer, want string, msgAndArgs ...interface{}) {
	t.Helper()
	if isNil(got) {
		fail(t, msgAndArgs, "no position; want FEN %q", want)
		return
	}
	if fen := got.FEN(); fen != want {
		fail(t, msgAndArgs, "FEN = %q\n want %q", fen, want)
	}
}

// AssertContains fails if substr is not found in got.
func AssertContains(t testing.TB, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(got, substr) {
		fail(t, msgAndArgs, "%q does not contain %q", got, substr)
	}
}

// AssertNotContains fails if substr is found in got.
func AssertNotContains(t testing.TB, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if strings.Contains(got, substr) {
		fail(t, msgAndArgs, "%q should not contain %q", got, substr)
	}
}

func AssertTrue(t testing.TB, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !condition {
		fail(t, msgAndArgs, "expected true but got false")
	}
}

func AssertFalse(t testing.TB, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if condition {
		fail(t, msgAndArgs, "expected false but got true")
	}
}

// AssertNil fails if got is not nil. A typed nil such as a nil
// *engine.GameState counts as nil.
func AssertNil(t testing.TB, got interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !isNil(got) {
		fail(t, msgAndArgs, "expected nil but got %v", got)
	}
}

// AssertNotNil fails if got is nil, typed or not.
func AssertNotNil(t testing.TB, got interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if isNil(got) {
		fail(t, msgAndArgs, "expected non-nil value but got nil")
	}
}

// fail reports a failure, prefixed by the caller's message if one was given.
func fail(t testing.TB, msgAndArgs []interface{}, format string, args ...interface{}) {
	t.Helper()
	text := fmt.Sprintf(format, args...)
	if msg := formatMessage(msgAndArgs...); msg != "" {
		text = msg + ": " + text
	}
	t.Errorf("%s", text)
}

// isNil checks if a value is nil, handling both untyped and typed nils.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// formatMessage formats optional message arguments into a string.
func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	s, ok := msgAndArgs[0].(string)
	if !ok {
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if len(msgAndArgs) == 1 {
		return s
	}
	return fmt.Sprintf(s, msgAndArgs[1:]...)
}
