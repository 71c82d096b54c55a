package civic

import "strings"

// Urgency is the coarse time-sensitivity of a civic event.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// ParseUrgency normalizes a free-form urgency string. Anything
// unrecognized clamps to medium so a sloppy upstream value never sinks
// or inflates an event.
func ParseUrgency(s string) Urgency {
	switch Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case UrgencyHigh:
		return UrgencyHigh
	case UrgencyLow:
		return UrgencyLow
	default:
		return UrgencyMedium
	}
}

// rank orders urgencies for sorting. Unknown values sort last.
func (u Urgency) rank() int {
	switch u {
	case UrgencyHigh:
		return 0
	case UrgencyMedium:
		return 1
	case UrgencyLow:
		return 2
	default:
		return 3
	}
}
