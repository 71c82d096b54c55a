package legistar

import (
	"context"
	"fmt"
	"time"

	"github.com/het-sheth/fulcrumai/internal/civic"
)

// Source adapts the Legistar client to the refresh pipeline, merging
// upcoming meetings and recently introduced legislation into one
// event stream.
type Source struct {
	client    *Client
	daysAhead int
	daysBack  int
}

func NewSource(client *Client) *Source {
	return &Source{
		client:    client,
		daysAhead: DefaultDaysAhead,
		daysBack:  DefaultDaysBack,
	}
}

func (s *Source) Name() string { return "legistar" }

func (s *Source) Events(ctx context.Context) ([]civic.CivicEvent, error) {
	meetings, err := s.client.FetchUpcomingEvents(ctx, s.daysAhead)
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}

	matters, err := s.client.FetchRecentLegislation(ctx, s.daysBack)
	if err != nil {
		return nil, fmt.Errorf("recent legislation: %w", err)
	}

	out := TransformEvents(meetings, time.Now())
	out = append(out, TransformMatters(matters)...)
	return out, nil
}
