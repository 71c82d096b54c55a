// Package civic holds the civic event store and the matching engine
// that pairs stored events with resident interest profiles.
package civic

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CivicEvent is a normalized local government event: a meeting, a
// piece of legislation, or a web-sourced item. Events from every
// source share this shape so matching never cares where one came from.
type CivicEvent struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Summary   string    `json:"summary"`
	SourceURL string    `json:"source_url" gorm:"column:source_url;uniqueIndex;not null"`

	// ImpactTags drive matching against user interests.
	ImpactTags pq.StringArray `json:"impact_tags" gorm:"column:impact_tags;type:text[]"`

	Urgency    Urgency    `json:"urgency"`
	EventDate  *time.Time `json:"event_date" gorm:"column:event_date"`
	SourceType string     `json:"source_type" gorm:"column:source_type"`
	Location   string     `json:"location"`

	// RawData keeps the source payload for debugging and re-tagging.
	RawData map[string]any `json:"raw_data,omitempty" gorm:"column:raw_data;serializer:json;type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CivicEvent) TableName() string {
	return "fulcrum.civic_events"
}

// Source type values.
const (
	SourceLegistarMeeting = "legistar_meeting"
	SourceLegistarMatter  = "legistar_matter"
	SourceWebSearch       = "web_search"
	SourceImport          = "import"
)
