package civic

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/het-sheth/fulcrumai/internal/provider"
)

// EventStore persists civic events.
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

// Recent returns a page of events ordered by event date, undated
// last. Matching filters this page in memory, so an event beyond the
// page boundary is invisible even when it would match.
func (s *EventStore) Recent(limit int) ([]CivicEvent, error) {
	var events []CivicEvent
	q := s.db.Order("event_date ASC NULLS LAST")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	return events, nil
}

// UpsertStats reports the outcome of a batch upsert. Individual record
// failures are counted, not fatal: one malformed event must not sink a
// refresh batch.
type UpsertStats struct {
	Upserted int `json:"upserted"`
	Errors   int `json:"errors"`
}

// Upsert writes events keyed by source_url, updating existing rows in
// place.
func (s *EventStore) Upsert(events []CivicEvent) UpsertStats {
	start := time.Now()
	var stats UpsertStats

	for _, ev := range events {
		if ev.SourceURL == "" || ev.Title == "" {
			stats.Errors++
			continue
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "source_url"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "summary", "impact_tags", "urgency",
				"event_date", "source_type", "location", "raw_data", "updated_at",
			}),
		}).Create(&ev).Error
		if err != nil {
			provider.LogError("civic", "upsert", err)
			stats.Errors++
			continue
		}
		stats.Upserted++
	}

	provider.LogUpsert("civic", stats.Upserted, time.Since(start))
	return stats
}

// PurgeOlderThan deletes events whose date fell more than the given
// number of days in the past. Undated events are kept.
func (s *EventStore) PurgeOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	res := s.db.Where("event_date IS NOT NULL AND event_date < ?", cutoff).Delete(&CivicEvent{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge events: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Stats summarizes the stored events for the admin endpoint.
type Stats struct {
	Total     int64            `json:"total_events"`
	BySource  map[string]int64 `json:"by_source"`
	ByUrgency map[string]int64 `json:"by_urgency"`
}

func (s *EventStore) Stats() (Stats, error) {
	stats := Stats{BySource: map[string]int64{}, ByUrgency: map[string]int64{}}

	if err := s.db.Model(&CivicEvent{}).Count(&stats.Total).Error; err != nil {
		return stats, fmt.Errorf("count events: %w", err)
	}

	if err := s.groupCount("source_type", stats.BySource); err != nil {
		return stats, err
	}
	if err := s.groupCount("urgency", stats.ByUrgency); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *EventStore) groupCount(column string, into map[string]int64) error {
	rows := []struct {
		Key string
		N   int64
	}{}
	err := s.db.Model(&CivicEvent{}).
		Select(column + " as key, count(*) as n").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count by %s: %w", column, err)
	}
	for _, r := range rows {
		into[r.Key] = r.N
	}
	return nil
}
