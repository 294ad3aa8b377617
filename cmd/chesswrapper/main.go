// chesswrapper decodes and encodes FEN, tokenizes PGN games and replays
// their moves, from the command line or as an HTTP game server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/server"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chesswrapper version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Configuration written to %s\n", path)
		return
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	switch {
	case *serveAddr != "":
		runServer(cfg)
	case *moveList != "":
		if err := runMoveList(cfg, *moveList, cfg.OutputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		opts, err := buildRunOptions(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		stats, err := processAllInputs(cfg, flag.Args(), os.Stdin, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cfg.Verbosity > 0 {
			reportStatistics(stats)
		}
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
	cfg.OutputFilename = *outputFile
}

// runServer serves until SIGINT or SIGTERM.
func runServer(cfg *config.Config) {
	srv := server.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Error shutting down: %v\n", err)
		}
	}()

	if err := srv.Listen(); err != nil {
		log.Fatal(err)
	}
}

// reportStatistics prints the final statistics to stderr.
func reportStatistics(stats runStats) {
	fmt.Fprintf(os.Stderr, "%d game(s) processed", stats.games)
	if stats.skipped > 0 {
		fmt.Fprintf(os.Stderr, ", %d not matched", stats.skipped)
	}
	if stats.duplicates > 0 {
		fmt.Fprintf(os.Stderr, ", %d duplicate(s)", stats.duplicates)
	}
	if stats.failed > 0 {
		fmt.Fprintf(os.Stderr, ", %d with errors", stats.failed)
	}
	fmt.Fprintln(os.Stderr, ".")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chesswrapper [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Tokenizes PGN games and applies chess moves to FEN positions.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMove lists (-moves):\n")
	fmt.Fprintf(os.Stderr, "  N:f3   piece letter and destination; the side to move decides the colour\n")
	fmt.Fprintf(os.Stderr, "  p:xd6  x before the square takes en passant\n")
	fmt.Fprintf(os.Stderr, "  Nbd2   anything without a colon is read as SAN\n")
}
