package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarquet/carfleet/internal/database"
)

func newEventDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "carfleet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestEventService_CreateAndGetRecent(t *testing.T) {
	svc := NewEventService(newEventDB(t))

	carID := "car-1"
	require.NoError(t, svc.CreateEvent("fleet.rent", "info", "Toyota Camry rented by c-1", &carID))
	require.NoError(t, svc.CreateEvent("fleet.return", "info", "Toyota Camry returned by c-1", &carID))
	require.NoError(t, svc.CreateEvent("user.register", "info", "customer Jane registered", nil))

	events, err := svc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 3)

	byType := map[string]bool{}
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "info", e.Level)
		assert.False(t, e.CreatedAt.IsZero())
		byType[e.Type] = e.CarID != nil
	}
	assert.True(t, byType["fleet.rent"])
	assert.True(t, byType["fleet.return"])
	assert.False(t, byType["user.register"], "registry events carry no car id")
}

func TestEventService_LimitApplies(t *testing.T) {
	svc := NewEventService(newEventDB(t))
	for i := 0; i < 5; i++ {
		require.NoError(t, svc.CreateEvent("fleet.add", "info", "car added", nil))
	}

	events, err := svc.GetRecentEvents(3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestRentalServiceRecordsAuditTrail(t *testing.T) {
	events := NewEventService(newEventDB(t))
	svc := NewRentalService(&stubStore{}, events)
	svc.Bootstrap()

	customer := loginCustomer(t, svc, "John Doe", "123")
	car := firstAvailable(t, svc)
	require.NoError(t, svc.RentCar(car.CarID, customer.ID()))
	require.NoError(t, svc.ReturnCar(car.CarID, customer.ID()))

	recent, err := events.GetRecentEvents(10)
	require.NoError(t, err)
	types := map[string]int{}
	for _, e := range recent {
		types[e.Type]++
	}
	assert.Equal(t, 1, types["auth.login"])
	assert.Equal(t, 1, types["fleet.rent"])
	assert.Equal(t, 1, types["fleet.return"])
}
