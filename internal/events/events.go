package events

import (
	"time"

	"github.com/google/uuid"
)

// RankComputedEvent is published after each cache-miss ranking computation.
type RankComputedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Salary        int       `json:"salary"`
	FamilySize    int       `json:"family_size"`
	TransportMode string    `json:"transport_mode"`
	ResultCount   int       `json:"result_count"`
	DurationMs    int64     `json:"duration_ms"`
	Timestamp     time.Time `json:"timestamp"`
}

// DataRefreshedEvent is emitted by the ETL jobs after reloading a dataset.
// The API subscribes to it and flushes the ranking cache.
type DataRefreshedEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	Dataset   string    `json:"dataset"`
	Metros    int       `json:"metros,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
