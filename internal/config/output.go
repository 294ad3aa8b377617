package config

import (
	"fmt"

	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// TagOutputForm specifies which tags to output.
type TagOutputForm int

const (
	AllTags        TagOutputForm = 0
	SevenTagRoster TagOutputForm = 1
	NoTags         TagOutputForm = 2
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSONFormat enables JSON output instead of text
	JSONFormat bool `json:"json"`

	// TagFormat specifies which tags to output (AllTags, SevenTagRoster, NoTags)
	TagFormat TagOutputForm `json:"tag_format"`

	// MaxLineLength is the maximum line length for move text
	MaxLineLength uint `json:"max_line_length"`

	// IncludeFEN adds the final position to each replayed game
	IncludeFEN bool `json:"include_fen"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		TagFormat:     AllTags,
		MaxLineLength: 80,
		IncludeFEN:    true,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.TagFormat < AllTags || o.TagFormat > NoTags {
		return fmt.Errorf("tag format %d: %w", o.TagFormat, errors.ErrValidation)
	}
	if o.MaxLineLength != 0 && o.MaxLineLength < 10 {
		return fmt.Errorf("max line length %d too short: %w", o.MaxLineLength, errors.ErrValidation)
	}
	return nil
}
