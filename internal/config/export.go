package config

import (
	"fmt"

	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// Compression codecs accepted for Parquet export.
var compressionCodecs = map[string]bool{
	"UNCOMPRESSED": true,
	"SNAPPY":       true,
	"GZIP":         true,
	"ZSTD":         true,
}

// ExportConfig holds settings for Parquet export.
type ExportConfig struct {
	// ParquetPath is the file game records are written to (empty = off).
	ParquetPath string `json:"parquet_path"`

	// Compression names the Parquet codec.
	Compression string `json:"compression"`

	// Parallel is the number of goroutines the Parquet writer marshals with.
	Parallel int64 `json:"parallel"`
}

// NewExportConfig creates an ExportConfig with default values.
func NewExportConfig() *ExportConfig {
	return &ExportConfig{
		Compression: "SNAPPY",
		Parallel:    4,
	}
}

// Enabled reports whether an export path is set.
func (e *ExportConfig) Enabled() bool {
	return e.ParquetPath != ""
}

// Validate checks that the export configuration is valid.
func (e *ExportConfig) Validate() error {
	if !compressionCodecs[e.Compression] {
		return fmt.Errorf("compression %q: %w", e.Compression, errors.ErrValidation)
	}
	if e.Parallel < 1 {
		return fmt.Errorf("parallel %d: %w", e.Parallel, errors.ErrValidation)
	}
	return nil
}
