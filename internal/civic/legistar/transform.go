package legistar

import (
	"fmt"
	"strings"
	"time"

	"github.com/het-sheth/fulcrumai/internal/civic"
)

const (
	meetingURLFormat     = "https://sfgov.legistar.com/MeetingDetail.aspx?ID=%d"
	legislationURLFormat = "https://sfgov.legistar.com/LegislationDetail.aspx?ID=%d"

	defaultBodyName = "Board of Supervisors"
	cityHallAddress = "City Hall, 1 Dr Carlton B Goodlett Pl"
)

// bodyTags maps committee names to the impact tags their meetings
// carry. Matching is a case-insensitive substring check so renamed
// committees ("... Committee (Special)") still map. The slice keeps
// matching order fixed; the first entry that matches wins.
var bodyTags = []struct {
	name string
	tags []string
}{
	{"Board of Supervisors", []string{"legislation", "city_policy"}},
	{"Budget and Finance Committee", []string{"budget", "taxes", "city_services"}},
	{"Land Use and Transportation Committee", []string{"housing", "zoning", "transportation"}},
	{"Public Safety and Neighborhood Services Committee", []string{"public_safety", "police", "neighborhoods"}},
	{"Government Audit and Oversight Committee", []string{"oversight", "accountability"}},
	{"Rules Committee", []string{"procedures", "appointments"}},
	{"Youth, Young Adult, and Families Committee", []string{"families", "youth", "education"}},
}

// matterKeywords maps title keywords to the extra tag a matter earns.
var matterKeywords = []struct {
	words []string
	tag   string
}{
	{[]string{"housing", "rent", "tenant", "eviction"}, "housing"},
	{[]string{"transit", "muni", "bike", "parking", "traffic"}, "transportation"},
	{[]string{"police", "safety", "crime"}, "public_safety"},
	{[]string{"budget", "tax", "fee"}, "budget"},
	{[]string{"zoning", "planning", "development"}, "zoning"},
}

// TransformEvents converts Legistar meeting records to civic events.
func TransformEvents(events []Event, now time.Time) []civic.CivicEvent {
	out := make([]civic.CivicEvent, 0, len(events))
	for _, ev := range events {
		body := ev.EventBodyName
		if body == "" {
			body = defaultBodyName
		}

		date := parseDate(ev.EventDate)

		summary := ev.EventComment
		if summary == "" {
			summary = fmt.Sprintf("Scheduled meeting of the %s", body)
		}

		out = append(out, civic.CivicEvent{
			Title:      fmt.Sprintf("%s Meeting", body),
			Summary:    summary,
			SourceURL:  fmt.Sprintf(meetingURLFormat, ev.EventID),
			ImpactTags: impactTagsForBody(body),
			Urgency:    meetingUrgency(date, now),
			EventDate:  date,
			SourceType: civic.SourceLegistarMeeting,
			Location:   ev.EventLocation,
			RawData: map[string]any{
				"event_id":   ev.EventID,
				"body_name":  ev.EventBodyName,
				"event_date": ev.EventDate,
				"comment":    ev.EventComment,
			},
		})
	}
	return out
}

// TransformMatters converts introduced legislation to civic events.
// Matters are always medium urgency; legislation moves slower than a
// meeting agenda.
func TransformMatters(matters []Matter) []civic.CivicEvent {
	out := make([]civic.CivicEvent, 0, len(matters))
	for _, m := range matters {
		title := m.MatterTitle
		if title == "" {
			title = "Untitled Legislation"
		}

		summary := m.MatterName
		if summary == "" {
			summary = m.MatterTitle
		}

		out = append(out, civic.CivicEvent{
			Title:      title,
			Summary:    summary,
			SourceURL:  fmt.Sprintf(legislationURLFormat, m.MatterID),
			ImpactTags: tagsForMatterTitle(m.MatterTitle),
			Urgency:    civic.UrgencyMedium,
			EventDate:  parseDate(m.MatterIntroDate),
			SourceType: civic.SourceLegistarMatter,
			Location:   cityHallAddress,
			RawData: map[string]any{
				"matter_id":   m.MatterID,
				"matter_type": m.MatterTypeName,
				"status":      m.MatterStatus,
				"intro_date":  m.MatterIntroDate,
			},
		})
	}
	return out
}

// meetingUrgency grades a meeting by how soon it happens. Undated
// meetings get medium.
func meetingUrgency(date *time.Time, now time.Time) civic.Urgency {
	if date == nil {
		return civic.UrgencyMedium
	}
	days := int(date.Sub(now).Hours() / 24)
	switch {
	case days <= 2:
		return civic.UrgencyHigh
	case days <= 7:
		return civic.UrgencyMedium
	default:
		return civic.UrgencyLow
	}
}

func impactTagsForBody(body string) []string {
	lower := strings.ToLower(body)
	for _, bt := range bodyTags {
		if strings.Contains(lower, strings.ToLower(bt.name)) {
			return bt.tags
		}
	}
	return []string{"city_policy"}
}

func tagsForMatterTitle(title string) []string {
	tags := []string{"legislation"}
	lower := strings.ToLower(title)
	for _, kw := range matterKeywords {
		for _, w := range kw.words {
			if strings.Contains(lower, w) {
				tags = append(tags, kw.tag)
				break
			}
		}
	}
	return tags
}

// parseDate handles the Legistar timestamp format, which is ISO-like
// with an optional fractional second.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	s = strings.Split(s, ".")[0]
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return nil
	}
	return &t
}
