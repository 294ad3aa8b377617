package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithTagFormat sets which tags are written.
func (b *ConfigBuilder) WithTagFormat(form TagOutputForm) *ConfigBuilder {
	b.cfg.Output.TagFormat = form
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithReplay enables move replay against StartFEN or the game's FEN tag.
func (b *ConfigBuilder) WithReplay(enabled bool) *ConfigBuilder {
	b.cfg.Replay = enabled
	return b
}

// WithStartFEN sets the default starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithWorkers sets the worker count.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithServerAddr sets the listen address.
func (b *ConfigBuilder) WithServerAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithParquetExport enables Parquet export to path.
func (b *ConfigBuilder) WithParquetExport(path string) *ConfigBuilder {
	b.cfg.Export.ParquetPath = path
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLogFile sets the diagnostics writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
