// Package engine holds the game state and the operations that read, write
// and mutate it: the FEN codec, move application and SAN resolution.
package engine

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenFieldCount is the number of space-separated fields in a FEN record.
const fenFieldCount = 6

// DecodeFEN builds a game state from a FEN string. The string must have
// exactly six fields separated by single spaces. Any failure is returned
// as a *errors.FENError and no state is returned.
func DecodeFEN(fen string) (*GameState, error) {
	fields := strings.Split(fen, " ")
	if len(fields) != fenFieldCount {
		return nil, &errors.FENError{
			Err:   errors.ErrFormat,
			Field: "record",
			Value: strconv.Itoa(len(fields)) + " fields",
		}
	}

	state := NewGameState()

	if err := parsePiecePositions(state.Position, fields[0]); err != nil {
		return nil, err
	}

	toMove, err := parseSideToMove(fields[1])
	if err != nil {
		return nil, err
	}
	state.ToMove = toMove

	rights, err := ParseCastlingRights(fields[2])
	if err != nil {
		return nil, &errors.FENError{Err: err, Field: "castling", Value: fields[2]}
	}
	state.Castling = rights

	if state.EnPassant, err = parseEnPassant(fields[3]); err != nil {
		return nil, err
	}

	if state.HalfmoveClock, err = parseClock(fields[4], "halfmove clock", 0); err != nil {
		return nil, err
	}
	if state.MoveNumber, err = parseClock(fields[5], "move number", 1); err != nil {
		return nil, err
	}

	return state, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
// Ranks run from 8 down to 1. A rank may describe fewer than eight files;
// the squares it leaves out are empty. Running past the h-file fails.
func parsePiecePositions(pos *chess.Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return &errors.FENError{Err: errors.ErrFormat, Field: "placement", Value: placement}
	}

	for i, rankText := range ranks {
		rank := chess.BoardSize - i
		file := 1
		for j := 0; j < len(rankText); j++ {
			c := rankText[j]
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				piece := chess.PieceFromLetter(c)
				if piece == chess.Empty || file > chess.BoardSize {
					return &errors.FENError{Err: errors.ErrFormat, Field: "placement", Value: rankText}
				}
				// The coordinate is in range here, so AddPiece cannot fail.
				_ = pos.AddPiece(piece, chess.Coordinate{Rank: rank, File: file})
				file++
			}
			if file > chess.BoardSize+1 {
				return &errors.FENError{Err: errors.ErrFormat, Field: "placement", Value: rankText}
			}
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(field string) (chess.Colour, error) {
	switch field {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	default:
		return chess.White, &errors.FENError{Err: errors.ErrValidation, Field: "side to move", Value: field}
	}
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(field string) (*chess.Coordinate, error) {
	if field == "-" {
		return nil, nil
	}
	c, err := chess.SquareToCoord(field)
	if err != nil {
		return nil, &errors.FENError{Err: errors.ErrFormat, Field: "en passant", Value: field}
	}
	return &c, nil
}

// parseClock parses a decimal counter that must be at least min. The
// counter may use the full width of uint.
func parseClock(field, name string, min uint64) (uint, error) {
	n, err := strconv.ParseUint(field, 10, strconv.IntSize)
	if err != nil || n < min {
		return 0, &errors.FENError{Err: errors.ErrFormat, Field: name, Value: field}
	}
	return uint(n), nil
}

// EncodeFEN converts a game state to a FEN string.
func EncodeFEN(state *GameState) string {
	var sb strings.Builder

	writePiecePositions(&sb, state.Position)
	sb.WriteByte(' ')
	writeSideToMove(&sb, state.ToMove)
	sb.WriteByte(' ')
	sb.WriteString(state.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(state.EnPassantSquare())
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(state.HalfmoveClock), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(state.MoveNumber), 10))

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, pos *chess.Position) {
	for rank := chess.BoardSize; rank >= 1; rank-- {
		emptyCount := 0
		for file := 1; file <= chess.BoardSize; file++ {
			piece := pos.Get(chess.Coordinate{Rank: rank, File: file})
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(chess.FENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, toMove chess.Colour) {
	if toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}
