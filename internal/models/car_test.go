package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarRentAndReturn(t *testing.T) {
	car := Car{CarID: "car-1", Brand: "Toyota", Model: "Camry", DailyRate: 60.0, State: StateAvailable}
	assert.True(t, car.Available())

	car.Rent("c-1")
	assert.False(t, car.Available())
	assert.Equal(t, StateRented, car.State)
	assert.Equal(t, "c-1", car.RenterID)

	car.Return()
	assert.True(t, car.Available())
	assert.Equal(t, StateAvailable, car.State)
	assert.Empty(t, car.RenterID)
}

func TestUserVariants(t *testing.T) {
	admin := NewAdmin("admin", "admin123")
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, AdminID, admin.ID())
	assert.True(t, admin.CheckPassword("admin123"))
	assert.False(t, admin.CheckPassword("admin1234"))

	customer := &Customer{CustomerID: "c-1", DisplayName: "Jane", Password: "pw"}
	assert.False(t, customer.IsAdmin())
	assert.Equal(t, "c-1", customer.ID())
	assert.Equal(t, "Jane", customer.Name())
	assert.True(t, customer.CheckPassword("pw"))
	assert.False(t, customer.CheckPassword("PW"))
}
