package models

import (
	"time"

	"github.com/avelier/forecast-service/internal/engine"
)

// Scenario is a named, persisted assumption set owned by a user. Metrics
// are never stored with it; they are recomputed on every read.
type Scenario struct {
	ID          string               `json:"id"`
	UserID      int64                `json:"user_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Assumptions engine.AssumptionSet `json:"assumptions"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ScenarioSummary is the list-view projection of a scenario, without the
// assumptions blob.
type ScenarioSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}
