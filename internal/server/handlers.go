package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chesswrapper-go/internal/engine"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/output"
	"github.com/lgbarn/chesswrapper-go/internal/parser"
)

type fenRequest struct {
	FEN string `json:"fen"`
}

func parseBody(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fmt.Errorf("request body: %v: %w", err, errors.ErrFormat)
	}
	return nil
}

// decodeFEN handles POST /api/fen/decode.
func (s *Server) decodeFEN(c *fiber.Ctx) error {
	var req fenRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	state, err := engine.DecodeFEN(req.FEN)
	if err != nil {
		return err
	}
	return c.JSON(NewStateView(state))
}

// parsedGame is the parse response: the game plus whether an equal game
// was posted before.
type parsedGame struct {
	*output.JSONGame
	Duplicate bool `json:"duplicate"`
}

// parsePGN handles POST /api/pgn/parse. The body is raw PGN text of one
// game; ?replay=true also resolves the moves. Replayed games are compared
// by final position, others by move text.
func (s *Server) parsePGN(c *fiber.Ctx) error {
	game, err := parser.Parse(parser.DecodeInput(c.Body()))
	if err != nil {
		return err
	}

	var final *engine.GameState
	if c.QueryBool("replay") {
		fen := game.FEN()
		if fen == "" {
			fen = s.cfg.StartFEN
		}
		if final, err = engine.DecodeFEN(fen); err != nil {
			return err
		}
		if _, err := engine.Replay(final, game.Moves); err != nil {
			return err
		}
	}
	return c.JSON(parsedGame{
		JSONGame:  output.GameToJSON(game, final, s.cfg),
		Duplicate: s.seen.CheckAndAdd(game, final),
	})
}

// pgnStats handles GET /api/pgn/stats.
func (s *Server) pgnStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"unique":     s.seen.UniqueCount(),
		"duplicates": s.seen.DuplicateCount(),
	})
}

// createGame handles POST /api/games.
func (s *Server) createGame(c *fiber.Ctx) error {
	var req fenRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sess, err := s.store.Create(req.FEN)
	if err != nil {
		return err
	}
	s.cfg.Logf(2, "game %s created\n", sess.ID)
	return c.Status(fiber.StatusCreated).JSON(sess.View())
}

func (s *Server) getGame(c *fiber.Ctx) error {
	sess, err := s.store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sess.View())
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.store.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// applyMove handles POST /api/games/:id/moves.
func (s *Server) applyMove(c *fiber.Ctx) error {
	sess, err := s.store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	var req MoveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	view, err := sess.Apply(req)
	if err != nil {
		return err
	}
	return c.JSON(view)
}
