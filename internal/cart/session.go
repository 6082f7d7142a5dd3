package cart

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/romich96/AlexCoffee/internal/models"
)

const (
	// SessionName is the public shop session cookie.
	SessionName = "shop-session"
	cartKey     = "cart"
	// CheckoutTokenKey holds the one-shot token guarding against
	// checkout double submission.
	CheckoutTokenKey = "checkout_token"
	// LastOrderKey holds the id of the order this session placed last,
	// so the confirmation page only shows the session's own order.
	LastOrderKey = "last_order"
)

// Register types for gob encoding (used by sessions)
func init() {
	gob.Register(&ShoppingCart{})
	gob.Register(models.SalePosition{})
}

// FromSession returns the session's cart, creating an empty one lazily
// on first access.
func FromSession(session *sessions.Session) *ShoppingCart {
	if c, ok := session.Values[cartKey].(*ShoppingCart); ok && c != nil {
		return c
	}
	c := New()
	session.Values[cartKey] = c
	return c
}

// Save writes the cart back into the session and persists the cookie.
func Save(c *ShoppingCart, session *sessions.Session, w http.ResponseWriter, r *http.Request) error {
	session.Values[cartKey] = c
	return session.Save(r, w)
}
