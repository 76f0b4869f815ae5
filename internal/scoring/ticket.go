package scoring

import "time"

// Ticket is a single support interaction as delivered by the ingestion
// layer. The engine only reads tickets; it never mutates or retains them
// across runs.
//
// Optional fields are pointers so "absent" and "zero" stay distinguishable:
// a sentiment of 0 is a real (neutral) observation, a nil sentiment means
// the export carried none.
type Ticket struct {
	ID          string     `json:"id"`
	Team        string     `json:"team"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	// ResponseMinutes is the precomputed first-response latency. When nil,
	// the latency is derived from the CreatedAt/RespondedAt pair.
	ResponseMinutes *float64 `json:"response_minutes,omitempty"`

	Message string `json:"message,omitempty"`

	// Sentiment is the combined customer sentiment in [-1, 1], already
	// blended upstream from the underlying model scores.
	Sentiment *float64 `json:"sentiment,omitempty"`

	Priority string `json:"priority,omitempty"`
	Category string `json:"category,omitempty"`

	Resolved          bool     `json:"resolved,omitempty"`
	ResolutionMinutes *float64 `json:"resolution_minutes,omitempty"`
}

// ResponseTime returns the first-response latency in minutes and whether
// the ticket carries one. An explicit ResponseMinutes value wins over the
// timestamp pair; a response recorded before the ticket was created counts
// as no data.
func (t Ticket) ResponseTime() (float64, bool) {
	if t.ResponseMinutes != nil {
		if *t.ResponseMinutes < 0 {
			return 0, false
		}
		return *t.ResponseMinutes, true
	}
	if t.RespondedAt != nil && !t.CreatedAt.IsZero() && !t.RespondedAt.Before(t.CreatedAt) {
		return t.RespondedAt.Sub(t.CreatedAt).Minutes(), true
	}
	return 0, false
}
