package config

import (
	"fmt"

	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// ServerConfig holds settings for the HTTP game service.
type ServerConfig struct {
	// Addr is the listen address, as accepted by net.Listen.
	Addr string `json:"addr"`

	// MaxSessions caps the number of live games (0 = no limit).
	MaxSessions int `json:"max_sessions"`

	// BodyLimit is the largest request body accepted, in bytes.
	BodyLimit int `json:"body_limit"`
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:        ":8080",
		MaxSessions: 1000,
		BodyLimit:   4 * 1024 * 1024,
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("server addr is empty: %w", errors.ErrValidation)
	}
	if s.MaxSessions < 0 {
		return fmt.Errorf("max sessions %d is negative: %w", s.MaxSessions, errors.ErrValidation)
	}
	if s.BodyLimit <= 0 {
		return fmt.Errorf("body limit %d: %w", s.BodyLimit, errors.ErrValidation)
	}
	return nil
}
