package models

// RentalState is the two-valued status of a car.
type RentalState string

const (
	StateAvailable RentalState = "available"
	StateRented    RentalState = "rented"
)

// Car represents a single vehicle in the fleet.
//
// Invariant: State == StateRented exactly when RenterID is non-empty.
type Car struct {
	CarID     string      `json:"id"`
	Brand     string      `json:"brand"`
	Model     string      `json:"model"`
	DailyRate float64     `json:"dailyRate"`
	State     RentalState `json:"state"`
	RenterID  string      `json:"renterId,omitempty"`
}

// Rent marks the car as rented by the given user. The caller is responsible
// for having checked availability first.
func (c *Car) Rent(renterID string) {
	c.State = StateRented
	c.RenterID = renterID
}

// Return marks the car as available again and clears the renter.
func (c *Car) Return() {
	c.State = StateAvailable
	c.RenterID = ""
}

// Available reports whether the car can currently be rented.
func (c *Car) Available() bool { return c.State == StateAvailable }
