package interactionlog

import "time"

// Entry is one appended row per assistant turn. Entries are never
// updated or deleted by the serving path.
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	UserInput  string    `json:"user_input"`
	AIResponse string    `json:"ai_response"`
	Intent     string    `json:"intent,omitempty"`
	ActionType string    `json:"action_type,omitempty"`
	Rating     *int      `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Aggregates holds batch statistics computed off the request path
type Aggregates struct {
	TotalTurns    int64            `json:"total_turns"`
	ActionCounts  map[string]int64 `json:"action_counts"`
	AverageRating float64          `json:"average_rating"`
	RatedTurns    int64            `json:"rated_turns"`
}
