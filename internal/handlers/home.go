package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/romich96/AlexCoffee/internal/cart"
	"github.com/romich96/AlexCoffee/internal/checkout"
	"github.com/romich96/AlexCoffee/internal/models"
	"github.com/romich96/AlexCoffee/internal/store"
)

// ShopHandler serves the public storefront: browsing, cart and checkout.
type ShopHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Checkout     *checkout.Service
}

const homeProductCount = 12

func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}
	products, err := h.Store.GetRandomProducts(homeProductCount)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, cart.SessionName)
	c := cart.FromSession(session)
	data := map[string]interface{}{
		"Categories": categories,
		"Products":   products,
		"CartSize":   c.Size(),
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Category renders one category's available products. Path: /category/{url}
func (h *ShopHandler) Category(w http.ResponseWriter, r *http.Request) {
	url := r.PathValue("url")
	category, err := h.Store.GetCategoryByURL(url)
	if err != nil {
		var nf *models.NotFoundError
		if errors.As(err, &nf) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error fetching category", http.StatusInternalServerError)
		return
	}

	products, err := h.Store.GetProductsByCategory(category.ID)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("category.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, cart.SessionName)
	c := cart.FromSession(session)
	data := map[string]interface{}{
		"Category":  category,
		"Products":  products,
		"CartSize":  c.Size(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Product renders one product page. Path: /product/{url}
func (h *ShopHandler) Product(w http.ResponseWriter, r *http.Request) {
	url := r.PathValue("url")
	product, err := h.Store.GetProductByURL(url)
	if err != nil {
		var nf *models.NotFoundError
		if errors.As(err, &nf) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}

	related, err := h.Store.GetProductsByCategory(product.CategoryID)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, cart.SessionName)
	c := cart.FromSession(session)
	data := map[string]interface{}{
		"Product":   product,
		"Related":   related,
		"CartSize":  c.Size(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))

	var products []models.Product
	var err error
	if term != "" {
		products, err = h.Store.SearchProducts(term)
		if err != nil {
			http.Error(w, "Error searching products", http.StatusInternalServerError)
			return
		}
	}

	tmpl := h.Templates.Get("search.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, cart.SessionName)
	c := cart.FromSession(session)
	data := map[string]interface{}{
		"Term":      term,
		"Products":  products,
		"CartSize":  c.Size(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
