// Package server exposes FEN decoding, PGN parsing and live game sessions
// over HTTP and WebSocket.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/hashing"
)

// Server wires the game store into a Fiber app.
type Server struct {
	cfg   *config.Config
	store *Store
	seen  *hashing.ThreadSafeDuplicateDetector
	app   *fiber.App
}

// New builds a server and registers its routes.
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:   cfg,
		store: NewStore(cfg.Server.MaxSessions),
		seen:  hashing.NewThreadSafeDuplicateDetector(true, cfg.DuplicateCapacity),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "chesswrapper",
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: cfg.Verbosity < 2,
		ErrorHandler:          errorHandler,
	})

	s.app.Use(recover.New())
	if cfg.Verbosity > 0 && cfg.LogFile != nil {
		s.app.Use(logger.New(logger.Config{Output: cfg.LogFile}))
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")
	api.Post("/fen/decode", s.decodeFEN)
	api.Post("/pgn/parse", s.parsePGN)
	api.Get("/pgn/stats", s.pgnStats)

	api.Post("/games", s.createGame)
	api.Get("/games/:id", s.getGame)
	api.Delete("/games/:id", s.deleteGame)
	api.Post("/games/:id/moves", s.applyMove)

	s.app.Get("/ws/games/:id", s.upgradeSession, websocket.New(s.handleSocket))
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Store returns the session store.
func (s *Server) Store() *Store {
	return s.store
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.cfg.Logf(1, "listening on %s\n", s.cfg.Server.Addr)
	return s.app.Listen(s.cfg.Server.Addr)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrSessionLimit):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, errors.ErrLookup):
		return fiber.StatusUnprocessableEntity
	case errors.Kind(err) != nil:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func errorHandler(c *fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(errorBody(err))
}

func errorBody(err error) fiber.Map {
	body := fiber.Map{"error": err.Error()}
	if kind := errors.Kind(err); kind != nil {
		body["kind"] = kind.Error()
	}
	return body
}
