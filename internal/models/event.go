package models

import "time"

// Event represents a loggable action in the system's audit trail.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "fleet.rent", "user.register"
	Level     string    `json:"level"` // e.g., "info", "warn"
	Message   string    `json:"message"`
	CarID     *string   `json:"carId,omitempty"` // Nullable for registry-only events
	CreatedAt time.Time `json:"createdAt"`
}
