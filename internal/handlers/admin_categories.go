package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/romich96/AlexCoffee/internal/models"
)

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_categories.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Categories": categories,
		"Flashes":    GetFlash(session),
		"CsrfField":  csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Title is required."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	url := strings.TrimSpace(r.FormValue("url"))
	if url == "" {
		url = models.Slugify(title)
	}

	category := &models.Category{
		Title:       title,
		URL:         url,
		Description: r.FormValue("description"),
	}
	if err := h.Store.CreateCategory(category); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving category."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category added successfully!"})
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	category, err := h.Store.GetCategoryByID(id)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Category not found."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	if title := strings.TrimSpace(r.FormValue("title")); title != "" {
		category.Title = title
	}
	if url := strings.TrimSpace(r.FormValue("url")); url != "" {
		category.URL = url
	}
	category.Description = r.FormValue("description")

	if err := h.Store.UpdateCategory(category); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating category."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category updated successfully!"})
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteCategory(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting category."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category deleted successfully!"})
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}
