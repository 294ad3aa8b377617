// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chesswrapper-go/internal/config"
)

// Flags left at their zero value keep whatever the config file (or the
// built-in default) says.
var (
	// Position options
	startFEN = flag.String("fen", "", "Start position as FEN (default: initial position)")
	moveList = flag.String("moves", "", "Apply comma-separated moves to -fen and print the result, e.g. \"N:f3,p:e5,e4\"")
	replay   = flag.Bool("replay", false, "Resolve each game's moves and report the final position")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	sevenTagOnly = flag.Bool("7", false, "Output only the seven tag roster")
	noTags       = flag.Bool("notags", false, "Don't output any tags")
	lineLength   = flag.Int("w", 0, "Maximum line length (default 80)")
	noFEN        = flag.Bool("nofen", false, "Don't add the final FEN after replayed games")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate games")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum games remembered for -D (0 = unlimited)")

	// Export options
	parquetFile = flag.String("parquet", "", "Also write game records to this Parquet file")
	compression = flag.String("compression", "", "Parquet codec: UNCOMPRESSED, SNAPPY, GZIP, ZSTD")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	quiet     = flag.Bool("s", false, "Silent mode (no game count)")
	verbose   = flag.Bool("verbose", false, "Log each game as it is processed")

	// Server
	serveAddr = flag.String("serve", "", "Run the HTTP game server on this address, e.g. :8080")

	// Other options
	configFile = flag.String("config", "", "Config file (default: search XDG config dirs)")
	saveConfig = flag.Bool("saveconfig", false, "Write the effective configuration to the XDG config file and exit")
	help       = flag.Bool("h", false, "Show help")
	version    = flag.Bool("version", false, "Show version")

	// Performance options
	workers = flag.Int("j", 0, "Number of worker goroutines (0 = one per CPU)")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyPositionFlags(cfg)
	applyTagOutputFlags(cfg)
	applyContentFlags(cfg)
	applyExportFlags(cfg)
	applyDuplicateFlags(cfg)

	if *serveAddr != "" {
		cfg.Server.Addr = *serveAddr
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

// applyPositionFlags configures the start position and replay.
func applyPositionFlags(cfg *config.Config) {
	if *startFEN != "" {
		cfg.StartFEN = *startFEN
	}
	if *replay {
		cfg.Replay = true
	}
}

// applyDuplicateFlags configures duplicate detection settings.
func applyDuplicateFlags(cfg *config.Config) {
	if *suppressDuplicates {
		cfg.SuppressDuplicates = true
	}
	if *duplicateCapacity > 0 {
		cfg.DuplicateCapacity = *duplicateCapacity
	}
}

// applyTagOutputFlags configures tag output settings.
func applyTagOutputFlags(cfg *config.Config) {
	switch {
	case *noTags:
		cfg.Output.TagFormat = config.NoTags
	case *sevenTagOnly:
		cfg.Output.TagFormat = config.SevenTagRoster
	}
}

// applyContentFlags configures content output settings.
func applyContentFlags(cfg *config.Config) {
	if *jsonOutput {
		cfg.Output.JSONFormat = true
	}
	if *lineLength > 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
	if *noFEN {
		cfg.Output.IncludeFEN = false
	}
}

// applyExportFlags configures Parquet export.
func applyExportFlags(cfg *config.Config) {
	if *parquetFile != "" {
		cfg.Export.ParquetPath = *parquetFile
	}
	if *compression != "" {
		cfg.Export.Compression = *compression
	}
}
