// processor.go - Game processing and output functions
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/export"
	"github.com/lgbarn/chesswrapper-go/internal/hashing"
	"github.com/lgbarn/chesswrapper-go/internal/output"
	"github.com/lgbarn/chesswrapper-go/internal/parser"
	"github.com/lgbarn/chesswrapper-go/internal/worker"
)

// runStats counts what a run did.
type runStats struct {
	games      int
	failed     int
	duplicates int
	skipped    int
}

// collectItems reads each named file, or stdin when names is empty, and
// splits the text into one work item per game. Unreadable files are
// reported and skipped.
func collectItems(cfg *config.Config, names []string, stdin io.Reader) []worker.WorkItem {
	var items []worker.WorkItem
	add := func(source string, data []byte) {
		for _, text := range parser.SplitGames(parser.DecodeInput(data)) {
			items = append(items, worker.WorkItem{Index: len(items), Source: source, Text: text})
		}
	}

	if len(names) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			return nil
		}
		add("stdin", data)
		return items
	}

	for _, name := range names {
		data, err := os.ReadFile(name) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening file %s: %v\n", name, err)
			continue
		}
		before := len(items)
		add(name, data)
		cfg.Logf(2, "%s: %d game(s)\n", name, len(items)-before)
	}
	return items
}

// processItems runs items through a worker pool and returns the results
// in input order.
func processItems(cfg *config.Config, items []worker.WorkItem) []worker.ProcessResult {
	numWorkers := cfg.Workers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}
	bufferSize := len(items)
	if bufferSize > 100 {
		bufferSize = 100
	}

	pool := worker.NewPool(numWorkers, bufferSize, worker.GameProcessor(cfg.StartFEN, cfg.Replay))
	pool.Start()
	return pool.ProcessAll(items)
}

// writeResults writes every parsed game to cfg.OutputFile and, when export
// is enabled, every result to the Parquet file. Failed games are logged;
// a game whose replay failed is still written, without a final position.
// Games are ECO-tagged before selection when opts carries a classifier.
// Games rejected by the filter and, with duplicate suppression on, repeats
// are counted and skipped.
func writeResults(cfg *config.Config, results []worker.ProcessResult, opts runOptions) (runStats, error) {
	stats := runStats{games: len(results)}
	gw := output.NewGameWriter(cfg.OutputFile, cfg)

	var detector *hashing.DuplicateDetector
	if cfg.SuppressDuplicates {
		detector = hashing.NewDuplicateDetector(true, cfg.DuplicateCapacity)
	}

	var records []export.GameRecord
	for _, result := range results {
		final := result.State
		if result.Err != nil {
			stats.failed++
			final = nil
			cfg.Logf(1, "%s: %v\n", result.Source, result.Err)
		}

		if result.Game != nil && opts.eco != nil {
			opts.eco.AddTags(result.Game)
		}

		if result.Game != nil && opts.filter != nil && !opts.filter.MatchGame(result.Game, final) {
			stats.skipped++
			continue
		}

		if result.Game != nil && detector != nil && detector.CheckAndAdd(result.Game, final) {
			stats.duplicates++
			cfg.Logf(2, "%s: game %d is a duplicate\n", result.Source, result.Index+1)
			continue
		}

		if result.Game != nil {
			if err := gw.WriteGame(result.Game, final); err != nil {
				return stats, err
			}
		}
		if cfg.Export.Enabled() {
			records = append(records, export.NewGameRecord(
				result.Source, result.Index+1, result.Game, result.InitialFEN, final, result.Err))
		}
	}
	if err := gw.Close(); err != nil {
		return stats, err
	}

	if cfg.Export.Enabled() {
		if err := export.WriteRecords(records, cfg.Export); err != nil {
			return stats, err
		}
		cfg.Logf(2, "wrote %d record(s) to %s\n", len(records), cfg.Export.ParquetPath)
	}
	return stats, nil
}

// processAllInputs processes all input files or stdin.
func processAllInputs(cfg *config.Config, names []string, stdin io.Reader, opts runOptions) (runStats, error) {
	items := collectItems(cfg, names, stdin)
	return writeResults(cfg, processItems(cfg, items), opts)
}
