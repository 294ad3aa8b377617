package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/testutil"
)

func TestBuildGameFilter(t *testing.T) {
	t.Run("no flags means no filter", func(t *testing.T) {
		cfg := config.NewConfig()
		gf, err := buildGameFilter(cfg)
		testutil.AssertNoError(t, err)
		testutil.AssertNil(t, gf)
	})

	t.Run("final position forces replay", func(t *testing.T) {
		defer saveRestoreString(finalFEN, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")()
		cfg := config.NewConfig()
		gf, err := buildGameFilter(cfg)
		testutil.AssertNoError(t, err)
		testutil.AssertNotNil(t, gf)
		testutil.AssertTrue(t, cfg.Replay)
	})

	t.Run("bad final position", func(t *testing.T) {
		defer saveRestoreString(finalFEN, "8/8 w")()
		_, err := buildGameFilter(config.NewConfig())
		if !errors.Is(err, errors.ErrFormat) {
			t.Errorf("buildGameFilter() error = %v; want ErrFormat", err)
		}
	})

	t.Run("criteria file", func(t *testing.T) {
		path := writeTempFile(t, "criteria.txt", "Result \"1-0\"\nWhite ~ \"^A\"\n")
		defer saveRestoreString(tagFile, path)()
		gf, err := buildGameFilter(config.NewConfig())
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, gf.Tags.CriteriaCount(), 2)
	})

	t.Run("material and variations", func(t *testing.T) {
		defer saveRestoreString(materialMatch, "QRR:qrr")()
		defer saveRestoreString(materialMatchExact, "K:k")()
		defer saveRestoreString(variationFile, writeTempFile(t, "lines.txt", "1. e4 e5\n"))()
		defer saveRestoreBool(varAnywhere, true)()
		cfg := config.NewConfig()
		cfg.StartFEN = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"

		gf, err := buildGameFilter(cfg)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, len(gf.Material()), 2)
		testutil.AssertEqual(t, gf.Material()[1].String(), "=K:k")
		testutil.AssertEqual(t, gf.StartFEN, cfg.StartFEN)
		testutil.AssertTrue(t, gf.Variations.Anywhere)
		testutil.AssertFalse(t, cfg.Replay)
	})

	t.Run("bad material", func(t *testing.T) {
		defer saveRestoreString(materialMatch, "Qx:q")()
		_, err := buildGameFilter(config.NewConfig())
		testutil.AssertErrorIs(t, err, errors.ErrValidation)
	})

	t.Run("bad position file", func(t *testing.T) {
		path := writeTempFile(t, "positions.txt", "8/8 w\n")
		defer saveRestoreString(positionFile, path)()
		_, err := buildGameFilter(config.NewConfig())
		testutil.AssertErrorIs(t, err, errors.ErrFormat)
		testutil.AssertContains(t, err.Error(), path)
	})

	t.Run("missing criteria file", func(t *testing.T) {
		defer saveRestoreString(tagFile, filepath.Join(t.TempDir(), "none.txt"))()
		_, err := buildGameFilter(config.NewConfig())
		testutil.AssertError(t, err)
	})
}

func TestProcessAllInputs_Filter(t *testing.T) {
	t.Run("player", func(t *testing.T) {
		defer saveRestoreString(playerFilter, "bob")()
		var out bytes.Buffer
		cfg := testConfig(&out, io.Discard)
		gf, err := buildGameFilter(cfg)
		testutil.AssertNoError(t, err)

		stats, err := processAllInputs(cfg, nil, strings.NewReader(twoGames), runOptions{filter: gf})
		testutil.AssertNoError(t, err)
		assertStats(t, stats, runStats{games: 2, skipped: 1})
		testutil.AssertContains(t, out.String(), `[Event "First"]`)
		testutil.AssertNotContains(t, out.String(), `[Event "Second"]`)
	})

	t.Run("final position", func(t *testing.T) {
		defer saveRestoreString(finalFEN, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 1")()
		var out bytes.Buffer
		cfg := testConfig(&out, io.Discard)
		gf, err := buildGameFilter(cfg)
		testutil.AssertNoError(t, err)

		stats, err := processAllInputs(cfg, nil, strings.NewReader(twoGames), runOptions{filter: gf})
		testutil.AssertNoError(t, err)
		assertStats(t, stats, runStats{games: 2, failed: 1, skipped: 1})
		testutil.AssertContains(t, out.String(), `[Event "First"]`)
	})
}

func TestProcessAllInputs_Variations(t *testing.T) {
	t.Run("move sequence", func(t *testing.T) {
		defer saveRestoreString(variationFile, writeTempFile(t, "lines.txt", "# queen's pawn\n1. d4 d5\n"))()
		var out bytes.Buffer
		cfg := testConfig(&out, io.Discard)
		gf, err := buildGameFilter(cfg)
		testutil.AssertNoError(t, err)

		stats, err := processAllInputs(cfg, nil, strings.NewReader(twoGames), runOptions{filter: gf})
		testutil.AssertNoError(t, err)
		assertStats(t, stats, runStats{games: 2, skipped: 1})
		testutil.AssertContains(t, out.String(), `[Event "Second"]`)
		testutil.AssertNotContains(t, out.String(), `[Event "First"]`)
	})

	t.Run("material", func(t *testing.T) {
		defer saveRestoreString(materialMatch, "QQ:")()
		var out bytes.Buffer
		cfg := testConfig(&out, io.Discard)
		gf, err := buildGameFilter(cfg)
		testutil.AssertNoError(t, err)

		stats, err := processAllInputs(cfg, nil, strings.NewReader(twoGames), runOptions{filter: gf})
		testutil.AssertNoError(t, err)
		assertStats(t, stats, runStats{games: 2, skipped: 2})
		testutil.AssertNotContains(t, out.String(), "[Event")
	})
}

func TestProcessAllInputs_ECO(t *testing.T) {
	path := writeTempFile(t, "eco.pgn", `[ECO "C44"]
[Opening "King's pawn game"]

1. e4 e5 2. Nf3 Nc6 *
`)
	defer saveRestoreString(ecoFile, path)()
	defer saveRestoreString(tagFile, writeTempFile(t, "criteria.txt", `ECO = "C44"`+"\n"))()

	var out bytes.Buffer
	cfg := testConfig(&out, io.Discard)
	opts, err := buildRunOptions(cfg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, opts.eco.EntriesLoaded(), 1)

	stats, err := processAllInputs(cfg, nil, strings.NewReader(twoGames), opts)
	testutil.AssertNoError(t, err)
	assertStats(t, stats, runStats{games: 2, skipped: 1})
	testutil.AssertContains(t, out.String(), `[ECO "C44"]`)
	testutil.AssertContains(t, out.String(), `[Opening "King's pawn game"]`)
}
