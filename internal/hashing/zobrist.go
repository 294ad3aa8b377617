package hashing

import (
	"math/rand"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
)

// zobristSeed fixes the key tables so hashes are stable across runs.
const zobristSeed = 0x5eed_c4e55

var (
	pieceKeys     [12][chess.BoardSize * chess.BoardSize]uint64
	blackToMove   uint64
	castlingKeys  [16]uint64
	enPassantKeys [chess.BoardSize]uint64
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed)) //nolint:gosec // G404: keys need to be stable, not secret
	for i := range pieceKeys {
		for j := range pieceKeys[i] {
			pieceKeys[i][j] = rng.Uint64()
		}
	}
	blackToMove = rng.Uint64()
	for i := range castlingKeys {
		castlingKeys[i] = rng.Uint64()
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = rng.Uint64()
	}
}

// PositionHash returns the Zobrist hash of state: piece placement, side to
// move, castling rights and en passant file. Clocks are not included, so
// the same position reached by different move orders hashes equal.
func PositionHash(state *engine.GameState) uint64 {
	var hash uint64
	for rank := 1; rank <= chess.BoardSize; rank++ {
		for file := 1; file <= chess.BoardSize; file++ {
			piece := state.Position.Get(chess.Coordinate{Rank: rank, File: file})
			if piece == chess.Empty {
				continue
			}
			hash ^= pieceKeys[pieceIndex(piece)][(rank-1)*chess.BoardSize+file-1]
		}
	}
	if state.ToMove == chess.Black {
		hash ^= blackToMove
	}
	hash ^= castlingKeys[int(state.Castling)%len(castlingKeys)]
	if state.EnPassant != nil {
		hash ^= enPassantKeys[state.EnPassant.File-1]
	}
	return hash
}

// pieceIndex maps a coloured piece code to 0..11.
func pieceIndex(piece chess.Piece) int {
	return (int(chess.ExtractPiece(piece))-1)*2 + int(chess.ExtractColour(piece))
}
