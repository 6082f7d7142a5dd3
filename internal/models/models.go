package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is a user's permission level. Closed set, seeded by migrations.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleClient  Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleClient:
		return true
	}
	return false
}

// Status is an order's fulfillment stage.
type Status string

const (
	StatusNew      Status = "NEW"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusDone     Status = "DONE"
)

// statusTransitions is the closed transition set. REJECTED and DONE are terminal.
var statusTransitions = map[Status][]Status{
	StatusNew:      {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusDone, StatusRejected},
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusAccepted, StatusRejected, StatusDone:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Category struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"` // url slug, unique
	Description string `json:"description"`
	PhotoID     int64  `json:"photo_id"`
	PhotoSmall  string `json:"photo_small"` // for display convenience
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Field: "title", Reason: "title is required"}
	}
	if strings.TrimSpace(c.URL) == "" {
		return &ValidationError{Field: "url", Reason: "url slug is required"}
	}
	return nil
}

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`     // url slug, unique among available products
	Article     string    `json:"article"` // unique article number
	Description string    `json:"description"`
	CategoryID  int64     `json:"category_id"`
	Category    string    `json:"category"` // category title, for display convenience
	PhotoID     int64     `json:"photo_id"`
	PhotoSmall  string    `json:"photo_small"`
	PhotoLarge  string    `json:"photo_large"`
	Price       float64   `json:"price"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title", Reason: "title is required"}
	}
	if strings.TrimSpace(p.URL) == "" {
		return &ValidationError{Field: "url", Reason: "url slug is required"}
	}
	if p.Price < 0 {
		return &ValidationError{Field: "price", Reason: "price must not be negative"}
	}
	return nil
}

type Photo struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"` // unique
	URLLarge string `json:"url_large"`
	URLSmall string `json:"url_small"`
}

// SalePosition is one (product, quantity, snapshotted price) line item.
// It is used live in the cart and frozen inside an Order; the price is
// copied from the product at add time and never re-read, so historical
// orders are unaffected by later price changes.
type SalePosition struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"product_id"`
	ProductTitle string  `json:"product_title"` // for display convenience
	ProductURL   string  `json:"product_url"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"` // snapshot, not the current product price
}

// Sum returns quantity × snapshot price.
func (sp SalePosition) Sum() float64 {
	return float64(sp.Quantity) * sp.Price
}

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"` // manager/admin only
	Password string `json:"-"`        // bcrypt hash, manager/admin only
	Role     Role   `json:"role"`
}

// Equals compares users by the (name, email, phone) triple, not identity.
func (u *User) Equals(other *User) bool {
	if other == nil {
		return false
	}
	return u.Name == other.Name && u.Email == other.Email && u.Phone == other.Phone
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if strings.TrimSpace(u.Email) == "" {
		return &ValidationError{Field: "email", Reason: "email is required"}
	}
	if strings.TrimSpace(u.Phone) == "" {
		return &ValidationError{Field: "phone", Reason: "phone is required"}
	}
	return nil
}

type Order struct {
	ID          int64          `json:"id"`
	Number      string         `json:"number"` // sequential human-readable, e.g. N-000042
	Status      Status         `json:"status"`
	ClientID    int64          `json:"client_id"`
	Client      *User          `json:"client,omitempty"`
	ManagerID   int64          `json:"manager_id,omitempty"`
	Manager     *User          `json:"manager,omitempty"`
	Address     string         `json:"address"`
	Description string         `json:"description"`
	Positions   []SalePosition `json:"positions"` // immutable snapshot taken at checkout
	CreatedAt   time.Time      `json:"created_at"`
}

// Total sums quantity × snapshot price over all positions.
func (o Order) Total() float64 {
	var total float64
	for _, p := range o.Positions {
		total += p.Sum()
	}
	return total
}

// FormatNumber renders the sequential order number shown to customers.
func FormatNumber(id int64) string {
	return fmt.Sprintf("N-%06d", id)
}
