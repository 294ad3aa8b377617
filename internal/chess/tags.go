package chess

import "sort"

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	"Event",
	"Site",
	"Date",
	"Round",
	"White",
	"Black",
	"Result",
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// OrderedTagNames returns the tag names of tags with the Seven Tag Roster
// first, in roster order, followed by the remaining names sorted.
func OrderedTagNames(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for _, t := range SevenTagRoster {
		if _, ok := tags[t]; ok {
			names = append(names, t)
		}
	}
	rest := make([]string, 0, len(tags))
	for name := range tags {
		if !IsSevenTagRosterTag(name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
