package civic

import (
	"context"
	"fmt"
	"log"
	"time"
)

// EventSource produces normalized civic events from one upstream.
type EventSource interface {
	Name() string
	Events(ctx context.Context) ([]CivicEvent, error)
}

// Refresher pulls every configured source and upserts the results.
// One failing source does not stop the others; its error is collected
// into the report.
type Refresher struct {
	store   *EventStore
	sources []EventSource
}

func NewRefresher(store *EventStore, sources ...EventSource) *Refresher {
	return &Refresher{store: store, sources: sources}
}

// RefreshReport is the outcome of one refresh run.
type RefreshReport struct {
	Fetched    int      `json:"events_fetched"`
	Upserted   int      `json:"events_saved"`
	Errors     int      `json:"upsert_errors"`
	Purged     int64    `json:"events_purged"`
	SourceErrs []string `json:"source_errors,omitempty"`
}

// Refresh fetches from all sources, upserts, and optionally purges
// events dated more than purgeDays in the past (0 disables purging).
func (r *Refresher) Refresh(ctx context.Context, purgeDays int) RefreshReport {
	var report RefreshReport
	var all []CivicEvent

	for _, src := range r.sources {
		start := time.Now()
		events, err := src.Events(ctx)
		if err != nil {
			log.Printf("[refresh] source %s: %v", src.Name(), err)
			report.SourceErrs = append(report.SourceErrs, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}
		log.Printf("[refresh] source %s: %d events in %dms", src.Name(), len(events), time.Since(start).Milliseconds())
		all = append(all, events...)
	}
	report.Fetched = len(all)

	stats := r.store.Upsert(all)
	report.Upserted = stats.Upserted
	report.Errors = stats.Errors

	if purgeDays > 0 {
		purged, err := r.store.PurgeOlderThan(purgeDays)
		if err != nil {
			log.Printf("[refresh] purge: %v", err)
			report.SourceErrs = append(report.SourceErrs, fmt.Sprintf("purge: %v", err))
		}
		report.Purged = purged
	}

	return report
}
