package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/romich96/AlexCoffee/internal/cart"
	"github.com/romich96/AlexCoffee/internal/metrics"
	"github.com/romich96/AlexCoffee/internal/models"
)

func (h *ShopHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, cart.SessionName)
	c := cart.FromSession(session)
	data := map[string]interface{}{
		"Positions": c.Positions(),
		"CartSize":  c.Size(),
		"Total":     c.Total(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// AddToCart handles both the product page form (with a quantity field)
// and the catalog quick-add buttons (no quantity, defaults to 1). Both
// paths share the increment semantics: re-adding a product raises its
// quantity and keeps the original price snapshot.
func (h *ShopHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cart.SessionName)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	quantity := 1
	if qtyStr := r.FormValue("quantity"); qtyStr != "" {
		quantity, err = strconv.Atoi(qtyStr)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Invalid quantity."})
			session.Save(r, w)
			http.Redirect(w, r, r.Referer(), http.StatusSeeOther)
			return
		}
	}

	product, err := h.Store.GetProductByID(productID)
	if err != nil {
		var nf *models.NotFoundError
		if errors.As(err, &nf) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Internal error. Please try again."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if !product.Available {
		session.AddFlash(FlashMessage{Type: "error", Message: product.Title + " is currently unavailable."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	c := cart.FromSession(session)
	if err := c.Add(product, quantity); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		cart.Save(c, session, w, r)
		http.Redirect(w, r, r.Referer(), http.StatusSeeOther)
		return
	}
	metrics.CartAdds.Inc()

	session.AddFlash(FlashMessage{Type: "success", Message: product.Title + " added to cart."})
	if err := cart.Save(c, session, w, r); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *ShopHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cart.SessionName)

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	c := cart.FromSession(session)
	c.Remove(productID) // absent product is a no-op
	if err := cart.Save(c, session, w, r); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *ShopHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cart.SessionName)

	c := cart.FromSession(session)
	c.Clear()
	if err := cart.Save(c, session, w, r); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
