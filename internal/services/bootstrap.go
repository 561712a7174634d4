package services

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rmarquet/carfleet/internal/models"
)

const (
	adminName     = "admin"
	adminPassword = "admin123"
)

var seedFleet = []struct {
	brand, model string
	dailyRate    float64
}{
	{"Toyota", "Camry", 60.0},
	{"Honda", "Civic", 55.0},
	{"Tesla", "Model 3", 120.0},
	{"Ford", "Mustang", 90.0},
}

// Fallback accounts kept from the first deployments. They are appended only
// when no persisted customer carries the same display name, and reach the
// store on the next registry save.
var fallbackCustomers = []models.Customer{
	{DisplayName: "John Doe", Password: "123", Contact: "999-111-2222", Email: "john@example.com"},
	{DisplayName: "Alice Smith", Password: "123", Contact: "999-333-4444", Email: "alice@example.com"},
}

// Bootstrap initializes process-start state: the admin account, the
// customers reconstructed from the store, the fallback customers and the
// seed fleet. A failing store load is logged and treated as an empty store.
func (s *RentalService) Bootstrap() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, models.NewAdmin(adminName, adminPassword))

	loaded, err := s.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load customer store")
	}
	for _, c := range loaded {
		s.users = append(s.users, c)
	}
	log.Info().Int("customers", len(loaded)).Msg("Customer store loaded")

	for _, fb := range fallbackCustomers {
		if s.hasCustomerNamedLocked(fb.DisplayName) {
			continue
		}
		customer := fb
		customer.CustomerID = uuid.New().String()
		s.users = append(s.users, &customer)
	}

	for _, seed := range seedFleet {
		s.fleet = append(s.fleet, &models.Car{
			CarID:     uuid.New().String(),
			Brand:     seed.brand,
			Model:     seed.model,
			DailyRate: seed.dailyRate,
			State:     models.StateAvailable,
		})
	}
}

func (s *RentalService) hasCustomerNamedLocked(name string) bool {
	for _, u := range s.users {
		if !u.IsAdmin() && u.Name() == name {
			return true
		}
	}
	return false
}
