// Package console is the interactive presentation layer. It renders the
// repository's query results and turns its typed rejections into messages;
// it holds no business logic of its own.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rmarquet/carfleet/internal/models"
	"github.com/rmarquet/carfleet/internal/services"
)

// Console drives the terminal menus against the rental repository.
type Console struct {
	svc    services.RentalServiceProvider
	events services.EventServiceProvider
	in     *bufio.Scanner
	out    io.Writer
}

// New creates a Console reading commands from in and writing to out. events
// may be nil, in which case the admin activity view is empty.
func New(svc services.RentalServiceProvider, events services.EventServiceProvider, in io.Reader, out io.Writer) *Console {
	return &Console{svc: svc, events: events, in: bufio.NewScanner(in), out: out}
}

// Run loops on the login menu until the user exits.
func (c *Console) Run() {
	fmt.Fprintln(c.out, "=== Car Rental Management System ===")
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1) Admin login")
		fmt.Fprintln(c.out, "2) Customer login")
		fmt.Fprintln(c.out, "3) Create customer account")
		fmt.Fprintln(c.out, "4) Exit")
		switch c.prompt("Choice") {
		case "1":
			c.login(true)
		case "2":
			c.login(false)
		case "3":
			c.register()
		case "4", "":
			fmt.Fprintln(c.out, "Goodbye.")
			return
		default:
			fmt.Fprintln(c.out, "Unknown option.")
		}
	}
}

func (c *Console) prompt(label string) string {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *Console) login(wantAdmin bool) {
	username := c.prompt("Username")
	password := c.prompt("Password")
	user, err := c.svc.Authenticate(username, password, wantAdmin)
	if err != nil {
		fmt.Fprintln(c.out, rejectionMessage(err))
		return
	}
	fmt.Fprintf(c.out, "Welcome, %s\n", user.Name())
	if user.IsAdmin() {
		c.adminMenu()
	} else {
		c.customerMenu(user)
	}
	c.svc.Logout()
}

func (c *Console) register() {
	name := c.prompt("Full name")
	contact := c.prompt("Contact number")
	email := c.prompt("Email address")
	password := c.prompt("Password")
	if _, err := c.svc.RegisterCustomer(name, password, contact, email); err != nil {
		fmt.Fprintln(c.out, rejectionMessage(err))
		return
	}
	fmt.Fprintln(c.out, "Account created. You can now log in as customer.")
}

func (c *Console) adminMenu() {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1) Show fleet")
		fmt.Fprintln(c.out, "2) Add vehicle")
		fmt.Fprintln(c.out, "3) Remove vehicle")
		fmt.Fprintln(c.out, "4) View renter details")
		fmt.Fprintln(c.out, "5) Recent activity")
		fmt.Fprintln(c.out, "6) Logout")
		switch c.prompt("Choice") {
		case "1":
			c.printFleet()
		case "2":
			c.addVehicle()
		case "3":
			if err := c.svc.RemoveCar(c.prompt("Car ID")); err != nil {
				fmt.Fprintln(c.out, rejectionMessage(err))
			} else {
				fmt.Fprintln(c.out, "Vehicle removed from fleet.")
			}
		case "4":
			c.renterDetails()
		case "5":
			c.printActivity()
		case "6", "":
			return
		default:
			fmt.Fprintln(c.out, "Unknown option.")
		}
	}
}

func (c *Console) customerMenu(user models.User) {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1) Available cars")
		fmt.Fprintln(c.out, "2) Rent a car")
		fmt.Fprintln(c.out, "3) My rentals")
		fmt.Fprintln(c.out, "4) Return a car")
		fmt.Fprintln(c.out, "5) Logout")
		switch c.prompt("Choice") {
		case "1":
			c.printCars(c.svc.ListAvailable())
		case "2":
			if err := c.svc.RentCar(c.prompt("Car ID"), user.ID()); err != nil {
				fmt.Fprintln(c.out, rejectionMessage(err))
			} else {
				fmt.Fprintln(c.out, "Car rented successfully.")
			}
		case "3":
			c.printCars(c.svc.ListRentalsFor(user.ID()))
		case "4":
			if err := c.svc.ReturnCar(c.prompt("Car ID"), user.ID()); err != nil {
				fmt.Fprintln(c.out, rejectionMessage(err))
			} else {
				fmt.Fprintln(c.out, "Car returned. Thank you!")
			}
		case "5", "":
			return
		default:
			fmt.Fprintln(c.out, "Unknown option.")
		}
	}
}

func (c *Console) addVehicle() {
	brand := c.prompt("Brand")
	model := c.prompt("Model")
	price, err := strconv.ParseFloat(c.prompt("Price per day"), 64)
	if err != nil {
		fmt.Fprintln(c.out, "Please enter a valid price.")
		return
	}
	if _, err := c.svc.AddCar(brand, model, price); err != nil {
		fmt.Fprintln(c.out, rejectionMessage(err))
		return
	}
	fmt.Fprintln(c.out, "Vehicle added to fleet.")
}

func (c *Console) renterDetails() {
	customer, err := c.svc.RenterDetails(c.prompt("Car ID"))
	if err != nil {
		fmt.Fprintln(c.out, rejectionMessage(err))
		return
	}
	fmt.Fprintf(c.out, "Renter ID: %s\nName: %s\nContact: %s\nEmail: %s\n",
		customer.CustomerID, customer.DisplayName, customer.Contact, customer.Email)
}

func (c *Console) printActivity() {
	if c.events == nil {
		return
	}
	events, err := c.events.GetRecentEvents(20)
	if err != nil {
		fmt.Fprintln(c.out, "Could not load activity: "+err.Error())
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tMESSAGE")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Type, e.Message)
	}
	w.Flush()
}

func (c *Console) printFleet() {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBRAND\tMODEL\tRATE/DAY\tSTATUS\tRENTER")
	for _, car := range c.svc.Fleet() {
		renter := car.RenterID
		if renter == "" {
			renter = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\t%s\n",
			car.CarID, car.Brand, car.Model, car.DailyRate, car.State, renter)
	}
	w.Flush()
}

func (c *Console) printCars(cars iter.Seq[models.Car]) {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBRAND\tMODEL\tRATE/DAY")
	for car := range cars {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\n", car.CarID, car.Brand, car.Model, car.DailyRate)
	}
	w.Flush()
}

// rejectionMessage maps a repository rejection to a user-facing message.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrValidation):
		return "Invalid input: " + strings.TrimPrefix(err.Error(), models.ErrValidation.Error()+": ")
	case errors.Is(err, models.ErrInvalidCredentials):
		return "Invalid credentials. Please try again."
	case errors.Is(err, models.ErrRoleMismatch):
		return "This account cannot use that login type."
	case errors.Is(err, models.ErrNotFound):
		return "No such vehicle or user. Refresh the list and try again."
	case errors.Is(err, models.ErrNotAvailable):
		return "That car is already rented."
	case errors.Is(err, models.ErrCarInUse):
		return "You can't remove a car that is currently rented."
	case errors.Is(err, models.ErrNotRented):
		return "That car is not currently rented."
	case errors.Is(err, models.ErrNotRenter):
		return "That car is rented by another customer."
	default:
		return "Operation failed: " + err.Error()
	}
}
