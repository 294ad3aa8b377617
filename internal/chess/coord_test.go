package chess

import (
	"errors"
	"testing"

	chesserrors "github.com/lgbarn/chesswrapper-go/internal/errors"
)

func TestSquareToCoord(t *testing.T) {
	tests := []struct {
		square  string
		want    Coordinate
		wantErr bool
	}{
		{"a1", Coordinate{Rank: 1, File: 1}, false},
		{"h8", Coordinate{Rank: 8, File: 8}, false},
		{"h5", Coordinate{Rank: 5, File: 8}, false},
		{"e4", Coordinate{Rank: 4, File: 5}, false},
		{"i9", Coordinate{}, true},
		{"a9", Coordinate{}, true},
		{"a0", Coordinate{}, true},
		{"A1", Coordinate{}, true},
		{"e", Coordinate{}, true},
		{"e44", Coordinate{}, true},
		{"", Coordinate{}, true},
		{"e4\n", Coordinate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			got, err := SquareToCoord(tt.square)
			if tt.wantErr {
				if !errors.Is(err, chesserrors.ErrFormat) {
					t.Errorf("SquareToCoord(%q) error = %v; want ErrFormat", tt.square, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SquareToCoord(%q) error = %v", tt.square, err)
			}
			if got != tt.want {
				t.Errorf("SquareToCoord(%q) = %+v; want %+v", tt.square, got, tt.want)
			}
		})
	}
}

func TestCoordToSquare(t *testing.T) {
	tests := []struct {
		rank, file int
		want       string
		wantErr    bool
	}{
		{1, 1, "a1", false},
		{8, 8, "h8", false},
		{5, 8, "h5", false},
		{3, 6, "f3", false},
		{0, 1, "", true},
		{1, 9, "", true},
		{9, 0, "", true},
	}

	for _, tt := range tests {
		got, err := CoordToSquare(tt.rank, tt.file)
		if tt.wantErr {
			if !errors.Is(err, chesserrors.ErrRange) {
				t.Errorf("CoordToSquare(%d, %d) error = %v; want ErrRange", tt.rank, tt.file, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("CoordToSquare(%d, %d) = %q, %v; want %q", tt.rank, tt.file, got, err, tt.want)
		}
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for rank := 1; rank <= BoardSize; rank++ {
		for file := 1; file <= BoardSize; file++ {
			sq, err := CoordToSquare(rank, file)
			if err != nil {
				t.Fatalf("CoordToSquare(%d, %d) error = %v", rank, file, err)
			}
			c, err := SquareToCoord(sq)
			if err != nil || c != (Coordinate{Rank: rank, File: file}) {
				t.Errorf("SquareToCoord(%q) = %+v, %v", sq, c, err)
			}
		}
	}
}

func TestCoordinateString(t *testing.T) {
	if got := (Coordinate{Rank: 0, File: 3}).String(); got != "?" {
		t.Errorf("off-board String() = %q; want ?", got)
	}
	if !IsSquare("g7") || IsSquare("g77") {
		t.Error("IsSquare mismatch")
	}
}

func TestPieceLetters(t *testing.T) {
	for _, piece := range AllColouredPieces {
		letter := FENLetter(piece)
		if got := PieceFromLetter(letter); got != piece {
			t.Errorf("PieceFromLetter(%c) = %d; want %d", letter, got, piece)
		}
		if !IsColouredPiece(piece) {
			t.Errorf("IsColouredPiece(%c) = false", letter)
		}
	}
	if FENLetter(B(Knight)) != 'n' || FENLetter(W(Knight)) != 'N' {
		t.Error("knight letters wrong")
	}
	if PieceFromLetter('x') != Empty || PieceTypeFromLetter('1') != Empty {
		t.Error("unknown letters should map to Empty")
	}
	if IsColouredPiece(Empty) || IsColouredPiece(Queen) {
		t.Error("bare types are not coloured pieces")
	}
}
