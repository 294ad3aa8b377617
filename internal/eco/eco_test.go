package eco

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/chesswrapper-go/internal/testutil"
)

const testECOData = `
[ECO "B90"]
[Opening "Sicilian"]
[Variation "Najdorf"]

1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *

[ECO "C50"]
[Opening "Giuoco Piano"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 *

[ECO "D35"]
[Opening "QGD"]
[Variation "exchange variation"]

1. d4 d5 2. c4 e6 3. Nc3 Nf6 4. cxd5 exd5 *

[Opening "No code"]

1. e4 *
`

const basePGNTags = `[Event "Test"]
[Site "Test"]
[Date "2024.01.01"]
[Round "1"]
[White "A"]
[Black "B"]
[Result "*"]

`

const sicilianNajdorfPGN = basePGNTags + `1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *`

const giuocoPianoPGN = basePGNTags + `1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 *`

const noMatchPGN = basePGNTags + `1. a3 *`

const extendedSicilianPGN = basePGNTags + `1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 6. Be2 e5 7. Nb3 *`

// Same position as the Najdorf, reached with 2...d6 and 4...Nf6 swapped
// around the knight moves.
const transposedSicilianPGN = basePGNTags + `1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 a6 5. Nc3 Nf6 *`

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	ec := NewClassifier()
	if err := ec.LoadFromReader(strings.NewReader(testECOData)); err != nil {
		t.Fatalf("failed to load ECO data: %v", err)
	}
	return ec
}

func TestClassifierLoad(t *testing.T) {
	ec := newTestClassifier(t)
	if got := ec.EntriesLoaded(); got != 3 {
		t.Errorf("EntriesLoaded() = %d; want 3", got)
	}
}

func TestClassifierLoadFromFile(t *testing.T) {
	ec := NewClassifier()
	err := ec.LoadFromFile(filepath.Join(t.TempDir(), "missing.pgn"))
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "cannot open ECO file")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		pgn       string
		code      string
		opening   string
		variation string
	}{
		{"sicilian", sicilianNajdorfPGN, "B90", "Sicilian", "Najdorf"},
		{"italian", giuocoPianoPGN, "C50", "Giuoco Piano", ""},
		{"continues past the line", extendedSicilianPGN, "B90", "Sicilian", "Najdorf"},
		{"transposition", transposedSicilianPGN, "B90", "Sicilian", "Najdorf"},
	}

	ec := newTestClassifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := ec.ClassifyGame(testutil.MustParseGame(t, tt.pgn))
			if match == nil {
				t.Fatal("ClassifyGame() returned nil; want match")
			}
			testutil.AssertEqual(t, match.ECOCode, tt.code)
			testutil.AssertEqual(t, match.Opening, tt.opening)
			testutil.AssertEqual(t, match.Variation, tt.variation)
		})
	}
}

func TestClassifyNoMatch(t *testing.T) {
	ec := newTestClassifier(t)
	if match := ec.ClassifyGame(testutil.MustParseGame(t, noMatchPGN)); match != nil {
		t.Errorf("ClassifyGame() = %q; want nil", match.ECOCode)
	}

	empty := NewClassifier()
	testutil.AssertNil(t, empty.ClassifyGame(testutil.MustParseGame(t, sicilianNajdorfPGN)))
}

func TestAddTags(t *testing.T) {
	ec := newTestClassifier(t)
	game := testutil.MustParseGame(t, sicilianNajdorfPGN)
	testutil.AssertFalse(t, game.HasTag("ECO"), "ECO tag before classification")

	testutil.AssertTrue(t, ec.AddTags(game))
	testutil.AssertEqual(t, game.GetTag("ECO"), "B90")
	testutil.AssertEqual(t, game.GetTag("Opening"), "Sicilian")
	testutil.AssertEqual(t, game.GetTag("Variation"), "Najdorf")
	testutil.AssertFalse(t, game.HasTag("SubVariation"))

	other := testutil.MustParseGame(t, noMatchPGN)
	testutil.AssertFalse(t, ec.AddTags(other))
	testutil.AssertFalse(t, other.HasTag("ECO"))
}
