// Package checkout turns a non-empty cart plus submitted contact fields
// into a persisted order. The sequence is fixed: validate, build the
// client, snapshot the cart, persist, notify (best effort), clear the
// cart. Persistence always happens before notification, and the cart is
// cleared only once the order is safely stored.
package checkout

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/romich96/AlexCoffee/internal/cart"
	"github.com/romich96/AlexCoffee/internal/models"
)

// OrderStore is the persistence collaborator. Implemented by store.Store.
type OrderStore interface {
	CreateOrder(order *models.Order) error
	GetUserByEmail(email string) (*models.User, error)
	CreateClient(user *models.User) error
}

// Notifier delivers the order confirmation. Failures are logged and
// swallowed; they never affect order success.
type Notifier interface {
	SendOrder(order *models.Order) error
}

type Service struct {
	store    OrderStore
	notifier Notifier
}

func NewService(store OrderStore, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Contact carries the submitted checkout form fields.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Comment string
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func (c Contact) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &models.ValidationError{Field: "name", Reason: "your name is required"}
	}
	if strings.TrimSpace(c.Email) == "" {
		return &models.ValidationError{Field: "email", Reason: "email address is required"}
	}
	if !emailRegex.MatchString(c.Email) {
		return &models.ValidationError{Field: "email", Reason: "please enter a valid email address"}
	}
	if strings.TrimSpace(c.Phone) == "" {
		return &models.ValidationError{Field: "phone", Reason: "phone number is required"}
	}
	return nil
}

// Place creates an order from the cart. The cart must be non-empty; a
// zero-item order is never produced. On success the cart has been
// cleared and the returned order carries its id and number.
func (s *Service) Place(c *cart.ShoppingCart, contact Contact) (*models.Order, error) {
	if c == nil || c.Size() == 0 {
		return nil, &models.ValidationError{Field: "cart", Reason: "cart is empty"}
	}
	if err := contact.validate(); err != nil {
		return nil, err
	}

	client, err := s.resolveClient(contact)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Status:      models.StatusNew,
		ClientID:    client.ID,
		Client:      client,
		Address:     strings.TrimSpace(contact.Address),
		Description: strings.TrimSpace(contact.Comment),
		Positions:   c.Snapshot(),
	}

	if err := s.store.CreateOrder(order); err != nil {
		return nil, err
	}

	// Notification is fire-and-forget: a lost email must not lose the order.
	if err := s.notifier.SendOrder(order); err != nil {
		slog.Error("Order notification failed", "order", order.Number, "error", err)
	}

	c.Clear()
	return order, nil
}

// resolveClient reuses an existing client whose (name, email, phone)
// triple matches the submitted contact, otherwise registers a new one
// with the default client role.
func (s *Service) resolveClient(contact Contact) (*models.User, error) {
	submitted := &models.User{
		Name:  strings.TrimSpace(contact.Name),
		Email: strings.TrimSpace(contact.Email),
		Phone: strings.TrimSpace(contact.Phone),
		Role:  models.RoleClient,
	}

	existing, err := s.store.GetUserByEmail(submitted.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Equals(submitted) {
		return existing, nil
	}

	if err := s.store.CreateClient(submitted); err != nil {
		return nil, err
	}
	return submitted, nil
}
