// filters.go - Game selection flags
package main

import (
	"flag"
	"io"
	"os"

	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/eco"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
	"github.com/lgbarn/chesswrapper-go/internal/matching"
)

var (
	tagFile      = flag.String("t", "", "Tag criteria file, one criterion per line: Tag op \"value\" or FEN \"...\"")
	playerFilter = flag.String("p", "", "Filter by player name (either color)")
	whiteFilter  = flag.String("Tw", "", "Filter by White player")
	blackFilter  = flag.String("Tb", "", "Filter by Black player")
	resultFilter = flag.String("Tr", "", "Filter by result (1-0, 0-1, 1/2-1/2, *)")
	finalFEN     = flag.String("Tf", "", "Keep only games whose replay ends on this FEN (implies -replay)")
	useSoundex   = flag.Bool("S", false, "Use Soundex for player name matching")
	ecoFile      = flag.String("e", "", "Add ECO, Opening and Variation tags using this ECO file")

	// Variation and material matching
	variationFile      = flag.String("v", "", "File with move sequences to match, one per line")
	positionFile       = flag.String("x", "", "File with FEN sequences to pass through, blank line between sequences")
	varAnywhere        = flag.Bool("vanywhere", false, "Match move sequences anywhere in the game, not only as the opening")
	materialMatch      = flag.String("z", "", "Material balance some position must reach (e.g. 'QR:qrr')")
	materialMatchExact = flag.String("y", "", "Exact material balance some position must reach")
)

// runOptions carries the optional per-game stages of a batch run.
type runOptions struct {
	filter *matching.GameFilter
	eco    *eco.Classifier
}

// buildRunOptions loads the ECO file and builds the game filter.
func buildRunOptions(cfg *config.Config) (runOptions, error) {
	var opts runOptions
	if *ecoFile != "" {
		opts.eco = eco.NewClassifier()
		if err := opts.eco.LoadFromFile(*ecoFile); err != nil {
			return opts, err
		}
		cfg.Logf(2, "%d ECO line(s) loaded from %s\n", opts.eco.EntriesLoaded(), *ecoFile)
	}

	filter, err := buildGameFilter(cfg)
	if err != nil {
		return opts, err
	}
	opts.filter = filter
	return opts, nil
}

// buildGameFilter turns the selection flags into a filter. It returns nil
// when no selection was asked for. Final position criteria switch replay
// on in cfg.
func buildGameFilter(cfg *config.Config) (*matching.GameFilter, error) {
	gf := matching.NewGameFilter()

	if *tagFile != "" {
		if err := loadFile(*tagFile, gf.LoadCriteria); err != nil {
			return nil, err
		}
	}

	if *playerFilter != "" {
		gf.AddPlayer(*playerFilter, *useSoundex)
	}
	if *whiteFilter != "" {
		addSideFilter(gf, "White", *whiteFilter)
	}
	if *blackFilter != "" {
		addSideFilter(gf, "Black", *blackFilter)
	}
	if *resultFilter != "" {
		gf.AddResult(*resultFilter)
	}
	if *finalFEN != "" {
		if err := gf.AddFinalPosition(*finalFEN); err != nil {
			return nil, err
		}
	}
	if err := addVariationFilters(cfg, gf); err != nil {
		return nil, err
	}

	if !gf.HasCriteria() {
		return nil, nil
	}
	if gf.NeedsReplay() {
		cfg.Replay = true
	}
	return gf, nil
}

// addVariationFilters applies -v, -x, -vanywhere, -z and -y.
func addVariationFilters(cfg *config.Config, gf *matching.GameFilter) error {
	gf.StartFEN = cfg.StartFEN
	gf.Variations.Anywhere = *varAnywhere

	if *variationFile != "" {
		if err := loadFile(*variationFile, gf.Variations.LoadMoves); err != nil {
			return err
		}
	}
	if *positionFile != "" {
		if err := loadFile(*positionFile, gf.Variations.LoadPositions); err != nil {
			return err
		}
	}
	if *materialMatch != "" {
		if err := gf.AddMaterial(*materialMatch, false); err != nil {
			return err
		}
	}
	if *materialMatchExact != "" {
		if err := gf.AddMaterial(*materialMatchExact, true); err != nil {
			return err
		}
	}
	for _, mm := range gf.Material() {
		cfg.Logf(2, "material criterion %s\n", mm)
	}
	return nil
}

func loadFile(name string, load func(io.Reader) error) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := load(file); err != nil {
		return errors.Wrap(err, name)
	}
	return nil
}

func addSideFilter(gf *matching.GameFilter, tag, name string) {
	if *useSoundex {
		_ = gf.Tags.AddCriterion(tag, name, matching.OpSoundex)
		return
	}
	gf.AddTag(tag, name)
}
