package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/romich96/AlexCoffee/internal/models"
)

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 10 // Default limit
	}

	offset := (page - 1) * limit

	orders, err := h.Store.GetAllOrders(limit, offset)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	totalOrders, err := h.Store.GetTotalOrdersCount()
	if err != nil {
		http.Error(w, "Error fetching total order count", http.StatusInternalServerError)
		return
	}

	totalPages := (totalOrders + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	tmpl := h.Templates.Get("admin_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Orders":      orders,
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
		"CurrentPage": page,
		"TotalPages":  totalPages,
		"Limit":       limit,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateOrderStatus moves an order along the status machine. Invalid
// transitions (e.g. reopening a DONE order) are rejected.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	next := models.Status(r.FormValue("status"))
	if !next.Valid() {
		session.AddFlash(FlashMessage{Type: "error", Message: "Unknown order status."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Order not found."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	if !order.Status.CanTransition(next) {
		session.AddFlash(FlashMessage{Type: "error", Message: "Order " + order.Number + " cannot move from " + string(order.Status) + " to " + string(next) + "."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	if err := h.Store.UpdateOrderStatus(id, next, sessionUserID(session)); err != nil {
		http.Error(w, "Error updating status", http.StatusInternalServerError)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order " + order.Number + " updated!"})
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}
