package services

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rmarquet/carfleet/internal/models"
)

// CustomerStoreProvider is the durable store for the customer subset of the
// user registry.
type CustomerStoreProvider interface {
	Save(customers []*models.Customer) error
	Load() ([]*models.Customer, error)
}

// RentalServiceProvider defines the interface the presentation layer
// consumes: command operations returning typed rejections, query operations
// for rendering, and the session accessor.
type RentalServiceProvider interface {
	Authenticate(username, password string, wantAdmin bool) (models.User, error)
	Logout()
	CurrentUser() models.User
	RegisterCustomer(name, password, contact, email string) (*models.Customer, error)
	AddCar(brand, model string, dailyRate float64) (*models.Car, error)
	RemoveCar(carID string) error
	RentCar(carID, renterID string) error
	ReturnCar(carID, renterID string) error
	Fleet() []models.Car
	ListAvailable() iter.Seq[models.Car]
	ListRentalsFor(userID string) iter.Seq[models.Car]
	RenterDetails(carID string) (*models.Customer, error)
}

// RentalService owns the in-memory fleet, the user registry and the current
// session, and writes the customer registry through to the store after every
// registry mutation. A single mutex guards the triple; persistence and audit
// writes are best-effort and never fail the triggering operation.
type RentalService struct {
	mu      sync.Mutex
	fleet   []*models.Car
	users   []models.User
	current models.User

	store    CustomerStoreProvider
	events   EventServiceProvider
	validate *validator.Validate
}

// NewRentalService creates an empty RentalService. Call Bootstrap to seed
// the registry and fleet.
func NewRentalService(store CustomerStoreProvider, events EventServiceProvider) *RentalService {
	return &RentalService{
		store:    store,
		events:   events,
		validate: validator.New(),
	}
}

type registerCustomerInput struct {
	Name     string `validate:"required"`
	Password string `validate:"required"`
	Contact  string `validate:"required"`
	Email    string `validate:"required"`
}

type addCarInput struct {
	DailyRate float64 `validate:"gte=0"`
}

// Authenticate resolves a user by case-insensitive name and password match
// and makes it the session user. wantAdmin selects which login path the
// caller used; a match on the wrong variant is rejected without touching
// the session.
func (s *RentalService) Authenticate(username, password string, wantAdmin bool) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if !strings.EqualFold(u.Name(), username) || !u.CheckPassword(password) {
			continue
		}
		if u.IsAdmin() != wantAdmin {
			return nil, models.ErrRoleMismatch
		}
		s.current = u
		s.recordEvent("auth.login", fmt.Sprintf("%s logged in", u.Name()), nil)
		return u, nil
	}
	return nil, models.ErrInvalidCredentials
}

// Logout clears the session user.
func (s *RentalService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// CurrentUser returns the session user, or nil when nobody is logged in.
func (s *RentalService) CurrentUser() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// RegisterCustomer creates a new customer account with a generated id,
// appends it to the registry and writes the registry through to the store.
func (s *RentalService) RegisterCustomer(name, password, contact, email string) (*models.Customer, error) {
	in := registerCustomerInput{
		Name:     strings.TrimSpace(name),
		Password: strings.TrimSpace(password),
		Contact:  strings.TrimSpace(contact),
		Email:    strings.TrimSpace(email),
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, validationMessage(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer := &models.Customer{
		CustomerID:  uuid.New().String(),
		DisplayName: in.Name,
		Password:    in.Password,
		Contact:     in.Contact,
		Email:       in.Email,
	}
	s.users = append(s.users, customer)
	s.saveCustomersLocked()
	s.recordEvent("user.register", fmt.Sprintf("customer %s registered", customer.DisplayName), nil)

	cpy := *customer
	return &cpy, nil
}

// AddCar creates a new available car and appends it to the fleet.
func (s *RentalService) AddCar(brand, model string, dailyRate float64) (*models.Car, error) {
	if math.IsNaN(dailyRate) || math.IsInf(dailyRate, 0) {
		return nil, fmt.Errorf("%w: dailyrate must be a number", models.ErrValidation)
	}
	if err := s.validate.Struct(addCarInput{DailyRate: dailyRate}); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, validationMessage(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	car := &models.Car{
		CarID:     uuid.New().String(),
		Brand:     brand,
		Model:     model,
		DailyRate: dailyRate,
		State:     models.StateAvailable,
	}
	s.fleet = append(s.fleet, car)
	s.recordEvent("fleet.add", fmt.Sprintf("%s %s added to fleet", car.Brand, car.Model), &car.CarID)

	cpy := *car
	return &cpy, nil
}

// RemoveCar removes an available car from the fleet. Removing a rented car
// is rejected, not forced.
func (s *RentalService) RemoveCar(carID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, car := range s.fleet {
		if car.CarID != carID {
			continue
		}
		if !car.Available() {
			return models.ErrCarInUse
		}
		s.fleet = append(s.fleet[:i], s.fleet[i+1:]...)
		s.recordEvent("fleet.remove", fmt.Sprintf("%s %s removed from fleet", car.Brand, car.Model), &carID)
		return nil
	}
	return fmt.Errorf("%w: car %s", models.ErrNotFound, carID)
}

// RentCar transitions an available car to rented by the given user.
func (s *RentalService) RentCar(carID, renterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	car := s.findCarLocked(carID)
	if car == nil {
		return fmt.Errorf("%w: car %s", models.ErrNotFound, carID)
	}
	if !car.Available() {
		return models.ErrNotAvailable
	}
	car.Rent(renterID)
	s.recordEvent("fleet.rent", fmt.Sprintf("%s %s rented by %s", car.Brand, car.Model, renterID), &carID)
	return nil
}

// ReturnCar transitions a rented car back to available. Only the user
// holding the active rental may return it; returning an already-available
// car is rejected and leaves state unchanged.
func (s *RentalService) ReturnCar(carID, renterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	car := s.findCarLocked(carID)
	if car == nil {
		return fmt.Errorf("%w: car %s", models.ErrNotFound, carID)
	}
	if car.Available() {
		return models.ErrNotRented
	}
	if car.RenterID != renterID {
		return models.ErrNotRenter
	}
	car.Return()
	s.recordEvent("fleet.return", fmt.Sprintf("%s %s returned by %s", car.Brand, car.Model, renterID), &carID)
	return nil
}

// Fleet returns a snapshot of the whole fleet in insertion order.
func (s *RentalService) Fleet() []models.Car {
	return s.snapshot()
}

// ListAvailable yields the cars currently available for rent, in insertion
// order. The sequence reads live state each time it is ranged over.
func (s *RentalService) ListAvailable() iter.Seq[models.Car] {
	return func(yield func(models.Car) bool) {
		for _, car := range s.snapshot() {
			if car.Available() && !yield(car) {
				return
			}
		}
	}
}

// ListRentalsFor yields the cars currently rented by the given user, in
// insertion order.
func (s *RentalService) ListRentalsFor(userID string) iter.Seq[models.Car] {
	return func(yield func(models.Car) bool) {
		for _, car := range s.snapshot() {
			if car.RenterID == userID && !yield(car) {
				return
			}
		}
	}
}

// RenterDetails returns the customer record holding the active rental of the
// given car.
func (s *RentalService) RenterDetails(carID string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	car := s.findCarLocked(carID)
	if car == nil {
		return nil, fmt.Errorf("%w: car %s", models.ErrNotFound, carID)
	}
	if car.Available() {
		return nil, models.ErrNotRented
	}
	for _, u := range s.users {
		if u.ID() != car.RenterID {
			continue
		}
		customer, ok := u.(*models.Customer)
		if !ok {
			break
		}
		cpy := *customer
		return &cpy, nil
	}
	return nil, fmt.Errorf("%w: renter %s", models.ErrNotFound, car.RenterID)
}

func (s *RentalService) findCarLocked(carID string) *models.Car {
	for _, car := range s.fleet {
		if car.CarID == carID {
			return car
		}
	}
	return nil
}

func (s *RentalService) snapshot() []models.Car {
	s.mu.Lock()
	defer s.mu.Unlock()
	cars := make([]models.Car, len(s.fleet))
	for i, car := range s.fleet {
		cars[i] = *car
	}
	return cars
}

// saveCustomersLocked writes the customer subset of the registry through to
// the store. Failures are logged, not raised: the in-memory registry stays
// the source of truth for the session.
func (s *RentalService) saveCustomersLocked() {
	var customers []*models.Customer
	for _, u := range s.users {
		if c, ok := u.(*models.Customer); ok {
			customers = append(customers, c)
		}
	}
	if err := s.store.Save(customers); err != nil {
		log.Error().Err(err).Msg("Failed to save customer store")
	}
}

func (s *RentalService) recordEvent(eventType, message string, carID *string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, "info", message, carID); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record audit event")
	}
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
