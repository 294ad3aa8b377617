// Package config provides configuration for chesswrapper.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
)

// Config holds all program configuration.
type Config struct {
	// Verbosity controls diagnostics written to LogFile:
	// 0=nothing, 1=summary, 2=running commentary.
	Verbosity int `json:"verbosity"`

	// Workers is the number of goroutines used for batch input.
	// 0 means one per CPU.
	Workers int `json:"workers"`

	// StartFEN is the position moves are applied to when a game carries
	// no FEN tag.
	StartFEN string `json:"start_fen"`

	// Replay resolves each parsed game's move tokens to a final position.
	Replay bool `json:"replay"`

	// SuppressDuplicates drops games whose final position (or, without
	// replay, move text) was already written.
	SuppressDuplicates bool `json:"suppress_duplicates"`

	// DuplicateCapacity caps the games remembered for duplicate
	// detection (0 = no limit).
	DuplicateCapacity int `json:"duplicate_capacity"`

	Output *OutputConfig `json:"output"`
	Server *ServerConfig `json:"server"`
	Export *ExportConfig `json:"export"`

	// OutputFilename is where OutputFile was opened from, if anywhere.
	OutputFilename string `json:"-"`

	// Output streams
	OutputFile io.Writer `json:"-"`
	LogFile    io.Writer `json:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		StartFEN:   engine.InitialFEN,
		Output:     NewOutputConfig(),
		Server:     NewServerConfig(),
		Export:     NewExportConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer results are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Logf writes a diagnostic line to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.Verbosity < level || c.LogFile == nil {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}

// Validate checks the configuration and each sub-config.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity %d not in 0..2: %w", c.Verbosity, errors.ErrValidation)
	}
	if c.DuplicateCapacity < 0 {
		return fmt.Errorf("duplicate capacity %d is negative: %w", c.DuplicateCapacity, errors.ErrValidation)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d is negative: %w", c.Workers, errors.ErrValidation)
	}
	if _, err := engine.DecodeFEN(c.StartFEN); err != nil {
		return errors.Wrap(err, "start_fen")
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Export.Validate()
}
