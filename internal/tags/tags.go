package tags

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tag is a free-form civic interest/impact label. The vocabulary is open:
// user profiles and civic events share the same tag space so overlap
// matching is an exact string comparison after canonicalization.
type Tag string

// Canonical normalizes a raw label to its matching form: trimmed and
// lowercased. Both the profile side and the event side go through this,
// so "Housing " and "housing" always intersect.
func Canonical(raw string) Tag {
	return Tag(strings.ToLower(strings.TrimSpace(raw)))
}

var titleCaser = cases.Title(language.AmericanEnglish)

// Display renders a tag for human-readable output, e.g. "bike_lanes"
// becomes "Bike Lanes".
func (t Tag) Display() string {
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

// Set is an unordered collection of unique tags.
type Set map[Tag]struct{}

// NewSet builds a Set from raw labels, canonicalizing each and
// dropping empties.
func NewSet(raw ...string) Set {
	s := make(Set, len(raw))
	for _, r := range raw {
		s.Add(r)
	}
	return s
}

// Add canonicalizes and inserts a label. Empty labels are ignored.
func (s Set) Add(raw string) {
	t := Canonical(raw)
	if t == "" {
		return
	}
	s[t] = struct{}{}
}

// AddAll inserts every label in raw.
func (s Set) AddAll(raw ...string) {
	for _, r := range raw {
		s.Add(r)
	}
}

// Union merges other into s.
func (s Set) Union(other Set) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// Contains reports whether the canonical form of raw is in the set.
func (s Set) Contains(raw string) bool {
	_, ok := s[Canonical(raw)]
	return ok
}

// Intersects reports whether any of the raw labels is in the set.
func (s Set) Intersects(raw []string) bool {
	for _, r := range raw {
		if s.Contains(r) {
			return true
		}
	}
	return false
}

// Len returns the number of tags in the set.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the tags as a lexically sorted string slice. Map
// iteration order is not deterministic, so every consumer that needs
// reproducible output (storage, truncation, responses) goes through
// this.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}

// SortedCapped returns the sorted tags truncated to at most max entries.
func (s Set) SortedCapped(max int) []string {
	out := s.Sorted()
	if max >= 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
