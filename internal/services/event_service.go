package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/rmarquet/carfleet/internal/models"
)

// EventServiceProvider defines the interface for the audit event trail.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, carID *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService records registry and fleet mutations in the database.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent logs a new event to the database.
func (s *EventService) CreateEvent(eventType, level, message string, carID *string) error {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		CarID:   carID,
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, car_id) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.CarID)
	return err
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, car_id, created_at FROM events ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var createdAt string
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.CarID, &createdAt); err != nil {
			return nil, err
		}
		// CURRENT_TIMESTAMP is stored as text
		if ts, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			event.CreatedAt = ts
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
