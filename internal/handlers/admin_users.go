package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"golang.org/x/crypto/bcrypt"

	"github.com/romich96/AlexCoffee/internal/models"
)

// ListStaff shows manager and admin accounts. Admin only.
func (h *AdminHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.Store.GetStaff()
	if err != nil {
		http.Error(w, "Error fetching users", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_users.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Staff":     staff,
		"Flashes":   GetFlash(session),
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	name := strings.TrimSpace(r.FormValue("name"))
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	role := models.Role(r.FormValue("role"))

	if name == "" || username == "" || password == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Name, username and password are required."})
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}
	if role != models.RoleAdmin && role != models.RoleManager {
		session.AddFlash(FlashMessage{Type: "error", Message: "Role must be admin or manager."})
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	if err := h.Store.CreateStaff(name, username, string(hashed), role); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error creating user. Username may already exist."})
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "User " + username + " created!"})
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}
	if id == sessionUserID(session) {
		session.AddFlash(FlashMessage{Type: "error", Message: "You cannot delete your own account."})
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteUser(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting user."})
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "User deleted."})
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
