package models

// AdminID is the fixed identifier of the single administrator account.
const AdminID = "A001"

// User is the closed set of account variants in the registry. The two
// implementations are Admin and Customer; callers branch on IsAdmin rather
// than on the concrete type.
type User interface {
	ID() string
	Name() string
	CheckPassword(candidate string) bool
	IsAdmin() bool
}

// Admin is the administrator account. Exactly one exists in the registry.
type Admin struct {
	DisplayName string `json:"name"`
	Password    string `json:"-"` // Never expose this to the client
}

// NewAdmin creates the administrator account.
func NewAdmin(name, password string) *Admin {
	return &Admin{DisplayName: name, Password: password}
}

func (a *Admin) ID() string    { return AdminID }
func (a *Admin) Name() string  { return a.DisplayName }
func (a *Admin) IsAdmin() bool { return true }

// CheckPassword compares the candidate against the stored secret.
func (a *Admin) CheckPassword(candidate string) bool { return a.Password == candidate }

// Customer is a self-registered (or store-loaded) customer account.
type Customer struct {
	CustomerID  string `json:"id"`
	DisplayName string `json:"name"`
	Password    string `json:"-"` // Never expose this to the client
	Contact     string `json:"contact"`
	Email       string `json:"email"`
}

func (c *Customer) ID() string    { return c.CustomerID }
func (c *Customer) Name() string  { return c.DisplayName }
func (c *Customer) IsAdmin() bool { return false }

// CheckPassword compares the candidate against the stored secret.
func (c *Customer) CheckPassword(candidate string) bool { return c.Password == candidate }
