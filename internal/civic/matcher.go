package civic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/het-sheth/fulcrumai/internal/profile"
	"github.com/het-sheth/fulcrumai/internal/tags"
)

// MatchedEvent is a civic event plus why it matched this user.
type MatchedEvent struct {
	CivicEvent
	MatchedTags []string `json:"matched_tags"`
	Explanation string   `json:"explanation"`
}

// DerivedInterests expands a user's stated interests with the tags
// implied by household attributes. An unset attribute contributes
// nothing.
func DerivedInterests(user *profile.User) tags.Set {
	interests := tags.NewSet(user.Interests...)

	if user.HasKids != nil && *user.HasKids {
		interests.AddAll("families", "education", "youth")
	}
	if user.HasCar != nil {
		if *user.HasCar {
			interests.AddAll("parking", "traffic")
		} else {
			interests.AddAll("transportation", "bike_lanes")
		}
	}

	return interests
}

// Match filters events to those whose impact tags intersect the
// interest set and orders them by urgency, then event date. Events
// without a date sort after dated ones within the same urgency. An
// empty interest set matches everything: a brand-new user still gets a
// dashboard.
func Match(events []CivicEvent, interests tags.Set, limit int) []MatchedEvent {
	matched := make([]MatchedEvent, 0, len(events))
	for _, ev := range events {
		hits := matchedTags(ev, interests)
		if interests.Len() > 0 && len(hits) == 0 {
			continue
		}
		matched = append(matched, MatchedEvent{
			CivicEvent:  ev,
			MatchedTags: hits,
			Explanation: explain(hits),
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if ra, rb := a.Urgency.rank(), b.Urgency.rank(); ra != rb {
			return ra < rb
		}
		switch {
		case a.EventDate == nil:
			return false
		case b.EventDate == nil:
			return true
		default:
			return a.EventDate.Before(*b.EventDate)
		}
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// matchedTags returns the event tags present in the interest set, in
// the event's own tag order.
func matchedTags(ev CivicEvent, interests tags.Set) []string {
	hits := []string{}
	seen := tags.NewSet()
	for _, raw := range ev.ImpactTags {
		if !interests.Contains(raw) || seen.Contains(raw) {
			continue
		}
		seen.Add(raw)
		hits = append(hits, string(tags.Canonical(raw)))
	}
	return hits
}

func explain(hits []string) string {
	if len(hits) == 0 {
		return "Happening in your city"
	}
	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = tags.Tag(h).Display()
	}
	return fmt.Sprintf("Matches your interest in %s", strings.Join(names, ", "))
}
