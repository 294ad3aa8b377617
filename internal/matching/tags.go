// Package matching selects games by tag values and final position.
package matching

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// TagOperator represents comparison operators for tag matching.
type TagOperator int

const (
	OpEqual TagOperator = iota
	OpNotEqual
	OpLessThan
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpContains // case-insensitive substring
	OpRegex
	OpSoundex // names that sound alike
)

// operatorTokens is checked in order, so two-character operators come
// before their one-character prefixes.
var operatorTokens = []struct {
	text string
	op   TagOperator
}{
	{"<=", OpLessOrEqual},
	{">=", OpGreaterOrEqual},
	{"<>", OpNotEqual},
	{"!=", OpNotEqual},
	{"<", OpLessThan},
	{">", OpGreaterThan},
	{"=", OpEqual},
	{"~", OpRegex},
}

// playerTag is the pseudo tag matching either White or Black.
const playerTag = "Player"

// TagCriterion is one condition on a tag value.
type TagCriterion struct {
	TagName  string
	Value    string
	Operator TagOperator

	regex   *regexp.Regexp
	soundex string
}

// TagMatcher holds tag criteria; a game matches when every criterion does.
type TagMatcher struct {
	criteria []*TagCriterion
}

// NewTagMatcher creates an empty tag matcher, which matches every game.
func NewTagMatcher() *TagMatcher {
	return &TagMatcher{}
}

// AddCriterion adds a condition. tagName "Player" matches White or Black.
func (tm *TagMatcher) AddCriterion(tagName, value string, op TagOperator) error {
	c := &TagCriterion{TagName: tagName, Value: value, Operator: op}
	switch op {
	case OpRegex:
		re, err := regexp.Compile(value)
		if err != nil {
			return fmt.Errorf("tag %s pattern %q: %v: %w", tagName, value, err, errors.ErrValidation)
		}
		c.regex = re
	case OpSoundex:
		c.soundex = Soundex(value)
	case OpContains:
		c.Value = strings.ToLower(value)
	}
	tm.criteria = append(tm.criteria, c)
	return nil
}

// ParseCriterion adds a criterion written as `Tag op "value"`, for example
// `Date >= "1990.01.01"` or `White ~ "^Kasp"`. A missing operator means
// equality. Blank lines and # comments are ignored.
func (tm *TagMatcher) ParseCriterion(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	end := strings.IndexAny(line, " \t<>=!~")
	if end <= 0 {
		return fmt.Errorf("criterion %q: %w", line, errors.ErrFormat)
	}
	name := line[:end]
	rest := strings.TrimSpace(line[end:])

	op := OpEqual
	for _, tok := range operatorTokens {
		if strings.HasPrefix(rest, tok.text) {
			op = tok.op
			rest = strings.TrimSpace(rest[len(tok.text):])
			break
		}
	}
	if unquoted, err := strconv.Unquote(rest); err == nil {
		rest = unquoted
	}
	return tm.AddCriterion(name, rest, op)
}

// CriteriaCount returns the number of criteria.
func (tm *TagMatcher) CriteriaCount() int {
	return len(tm.criteria)
}

// MatchGame reports whether game satisfies every criterion.
func (tm *TagMatcher) MatchGame(game *chess.Game) bool {
	for _, c := range tm.criteria {
		if !c.matches(game) {
			return false
		}
	}
	return true
}

func (c *TagCriterion) matches(game *chess.Game) bool {
	if c.TagName == playerTag {
		return c.matchValue(game.White()) || c.matchValue(game.Black())
	}
	value, ok := game.Tags[c.TagName]
	if !ok {
		return c.Operator == OpNotEqual
	}
	return c.matchValue(value)
}

func (c *TagCriterion) matchValue(value string) bool {
	switch c.Operator {
	case OpEqual:
		return strings.EqualFold(value, c.Value)
	case OpNotEqual:
		return !strings.EqualFold(value, c.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(value), c.Value)
	case OpRegex:
		return c.regex.MatchString(value)
	case OpSoundex:
		surname, _, _ := strings.Cut(value, ",")
		return Soundex(surname) == c.soundex
	default:
		return compareOrdered(value, c.Value, c.Operator)
	}
}

// compareOrdered compares as PGN dates when both sides are dates, then as
// numbers, and otherwise as case-folded strings.
func compareOrdered(value, bound string, op TagOperator) bool {
	var cmp int
	a, b := parseDate(value), parseDate(bound)
	x, errX := strconv.ParseFloat(value, 64)
	y, errY := strconv.ParseFloat(bound, 64)
	switch {
	case a > 0 && b > 0:
		cmp = a - b
	case errX == nil && errY == nil:
		if x < y {
			cmp = -1
		} else if x > y {
			cmp = 1
		}
	default:
		cmp = strings.Compare(strings.ToLower(value), strings.ToLower(bound))
	}

	switch op {
	case OpLessThan:
		return cmp < 0
	case OpLessOrEqual:
		return cmp <= 0
	case OpGreaterThan:
		return cmp > 0
	case OpGreaterOrEqual:
		return cmp >= 0
	}
	return false
}

// parseDate encodes a PGN date (YYYY.MM.DD, with ?? for unknown parts) as
// YYYYMMDD. Unknown month or day count as 1. Returns 0 for anything else.
func parseDate(s string) int {
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return 0
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 100 || year > 3000 {
		return 0
	}
	month, day := 1, 1
	if len(parts) > 1 {
		if m, err := strconv.Atoi(parts[1]); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	if len(parts) > 2 {
		if d, err := strconv.Atoi(parts[2]); err == nil && d >= 1 && d <= 31 {
			day = d
		}
	}
	return year*10000 + month*100 + day
}
