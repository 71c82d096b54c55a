package legistar

import (
	"reflect"
	"testing"
	"time"

	"github.com/het-sheth/fulcrumai/internal/civic"
)

var transformNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestTransformEventsUrgencyWindows(t *testing.T) {
	events := []Event{
		{EventID: 1, EventBodyName: "Rules Committee", EventDate: "2026-08-31T10:00:00"},
		{EventID: 2, EventBodyName: "Rules Committee", EventDate: "2026-09-05T10:00:00"},
		{EventID: 3, EventBodyName: "Rules Committee", EventDate: "2026-10-15T10:00:00"},
		{EventID: 4, EventBodyName: "Rules Committee"},
	}

	got := TransformEvents(events, transformNow)

	wantUrgency := []civic.Urgency{civic.UrgencyHigh, civic.UrgencyMedium, civic.UrgencyLow, civic.UrgencyMedium}
	for i, want := range wantUrgency {
		if got[i].Urgency != want {
			t.Errorf("event %d urgency = %q, want %q", i, got[i].Urgency, want)
		}
	}
	if got[3].EventDate != nil {
		t.Error("undated meeting got a date")
	}
}

func TestTransformEventsCommitteeTags(t *testing.T) {
	events := []Event{
		{EventID: 1, EventBodyName: "Land Use and Transportation Committee"},
		{EventID: 2, EventBodyName: "Committee of the Whole"},
		{EventID: 3},
	}

	got := TransformEvents(events, transformNow)

	if want := []string{"housing", "zoning", "transportation"}; !reflect.DeepEqual([]string(got[0].ImpactTags), want) {
		t.Errorf("tags = %v, want %v", got[0].ImpactTags, want)
	}
	// Unknown committees get the generic fallback.
	if want := []string{"city_policy"}; !reflect.DeepEqual([]string(got[1].ImpactTags), want) {
		t.Errorf("fallback tags = %v, want %v", got[1].ImpactTags, want)
	}
	// Missing body defaults to the Board itself.
	if got[2].Title != "Board of Supervisors Meeting" {
		t.Errorf("default title = %q", got[2].Title)
	}
}

func TestTransformEventsSourceURLAndSummary(t *testing.T) {
	events := []Event{
		{EventID: 42, EventBodyName: "Rules Committee", EventComment: "Special session"},
		{EventID: 43, EventBodyName: "Rules Committee"},
	}

	got := TransformEvents(events, transformNow)

	if got[0].SourceURL != "https://sfgov.legistar.com/MeetingDetail.aspx?ID=42" {
		t.Errorf("source url = %q", got[0].SourceURL)
	}
	if got[0].Summary != "Special session" {
		t.Errorf("summary = %q", got[0].Summary)
	}
	if got[1].Summary != "Scheduled meeting of the Rules Committee" {
		t.Errorf("default summary = %q", got[1].Summary)
	}
}

func TestTransformMatters(t *testing.T) {
	matters := []Matter{
		{
			MatterID:        7,
			MatterTitle:     "Ordinance amending rent stabilization for tenants",
			MatterName:      "Rent Stabilization Amendment",
			MatterIntroDate: "2026-08-15T00:00:00.123",
		},
		{MatterID: 8},
	}

	got := TransformMatters(matters)

	first := got[0]
	if first.Urgency != civic.UrgencyMedium {
		t.Errorf("matter urgency = %q, legislation is always medium", first.Urgency)
	}
	if want := []string{"legislation", "housing"}; !reflect.DeepEqual([]string(first.ImpactTags), want) {
		t.Errorf("tags = %v, want %v", first.ImpactTags, want)
	}
	if first.SourceURL != "https://sfgov.legistar.com/LegislationDetail.aspx?ID=7" {
		t.Errorf("source url = %q", first.SourceURL)
	}
	if first.EventDate == nil || first.EventDate.Day() != 15 {
		t.Errorf("intro date not parsed: %v", first.EventDate)
	}
	if first.Location != cityHallAddress {
		t.Errorf("location = %q", first.Location)
	}

	if got[1].Title != "Untitled Legislation" {
		t.Errorf("default title = %q", got[1].Title)
	}
}

func TestImpactTagsForBodyFirstMatchWins(t *testing.T) {
	// Matches both the budget and rules entries; the earlier table
	// entry must win, every time.
	body := "Joint Budget and Finance Committee and Rules Committee Session"
	want := []string{"budget", "taxes", "city_services"}
	for i := 0; i < 50; i++ {
		if got := impactTagsForBody(body); !reflect.DeepEqual(got, want) {
			t.Fatalf("tags = %v, want %v", got, want)
		}
	}
}

func TestTagsForMatterTitleMultipleKeywordGroups(t *testing.T) {
	got := tagsForMatterTitle("Budget allocation for bike parking near schools")

	want := []string{"legislation", "transportation", "budget"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}
