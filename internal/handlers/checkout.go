package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"

	"github.com/romich96/AlexCoffee/internal/cart"
	"github.com/romich96/AlexCoffee/internal/checkout"
	"github.com/romich96/AlexCoffee/internal/metrics"
	"github.com/romich96/AlexCoffee/internal/models"
)

// CheckoutForm renders the contact form. A one-shot token is placed in
// the session and the form so that a duplicate submission after the
// cart has been cleared is a redirect, not a second order.
func (h *ShopHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cart.SessionName)
	c := cart.FromSession(session)

	if c.Size() == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	token := uuid.New().String()
	session.Values[cart.CheckoutTokenKey] = token

	tmpl := h.Templates.Get("checkout.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Positions":     c.Positions(),
		"CartSize":      c.Size(),
		"Total":         c.Total(),
		"CheckoutToken": token,
		"CsrfField":     csrf.TemplateField(r),
		"Flashes":       GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cart.SessionName)
	c := cart.FromSession(session)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	// Double-submit guard: the form token must match the one issued with
	// the form, and it is consumed before the order is placed.
	expected, _ := session.Values[cart.CheckoutTokenKey].(string)
	submitted := r.FormValue("checkout_token")
	if expected == "" || submitted != expected || c.Size() == 0 {
		delete(session.Values, cart.CheckoutTokenKey)
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	delete(session.Values, cart.CheckoutTokenKey)

	contact := checkout.Contact{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Address: r.FormValue("address"),
		Comment: r.FormValue("comment"),
	}

	order, err := h.Checkout.Place(c, contact)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			session.AddFlash(FlashMessage{Type: "error", Message: ve.Error()})
			session.Save(r, w)
			http.Redirect(w, r, "/checkout", http.StatusSeeOther)
			return
		}
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to place order. Please try again."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}
	metrics.OrdersPlaced.Inc()

	// The cart was cleared by checkout; persist the empty cart.
	session.Values[cart.LastOrderKey] = order.ID
	session.AddFlash(FlashMessage{Type: "success", Message: "Order " + order.Number + " placed successfully! Check your email for details."})
	if err := cart.Save(c, session, w, r); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/order/confirmed?id="+strconv.FormatInt(order.ID, 10), http.StatusSeeOther)
}

func (h *ShopHandler) OrderConfirmed(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Only the session that placed the order may view its confirmation;
	// order ids are sequential and must not leak contact details.
	session, _ := h.SessionStore.Get(r, cart.SessionName)
	if own, ok := session.Values[cart.LastOrderKey].(int64); !ok || own != id {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		var nf *models.NotFoundError
		if errors.As(err, &nf) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error fetching order", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("order_confirmed.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	c := cart.FromSession(session)
	data := map[string]interface{}{
		"Order":    order,
		"Total":    order.Total(),
		"CartSize": c.Size(),
		"Flashes":  GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
