package chess

import (
	"fmt"
	"regexp"

	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// squarePattern matches a square name such as "e4".
var squarePattern = regexp.MustCompile(`^[a-h][1-8]$`)

// Coordinate is a 1-indexed (rank, file) pair. Rank 1 is White's back rank
// and file 1 is the a-file.
type Coordinate struct {
	Rank int
	File int
}

// Valid reports whether both rank and file lie on the board.
func (c Coordinate) Valid() bool {
	return inRange(c.Rank) && inRange(c.File)
}

// String returns the square name, or "?" for an off-board coordinate.
func (c Coordinate) String() string {
	if !c.Valid() {
		return "?"
	}
	return string([]byte{byte(ColBase + c.File - 1), byte(RankBase + c.Rank - 1)})
}

// IsSquare reports whether text names a square.
func IsSquare(text string) bool {
	return squarePattern.MatchString(text)
}

// SquareToCoord converts a square name such as "h5" to its coordinate (5, 8).
func SquareToCoord(text string) (Coordinate, error) {
	if !squarePattern.MatchString(text) {
		return Coordinate{}, fmt.Errorf("%q is not a square: %w", text, errors.ErrFormat)
	}
	return Coordinate{
		Rank: int(text[1]-RankBase) + 1,
		File: int(text[0]-ColBase) + 1,
	}, nil
}

// CoordToSquare converts a rank and file to a square name.
func CoordToSquare(rank, file int) (string, error) {
	if !inRange(rank) || !inRange(file) {
		return "", fmt.Errorf("rank %d, file %d: %w", rank, file, errors.ErrRange)
	}
	return Coordinate{Rank: rank, File: file}.String(), nil
}

// MustSquare is SquareToCoord for compile-time constant squares; it panics
// on malformed input.
func MustSquare(text string) Coordinate {
	c, err := SquareToCoord(text)
	if err != nil {
		panic(err)
	}
	return c
}

func inRange(v int) bool {
	return v >= 1 && v <= BoardSize
}
