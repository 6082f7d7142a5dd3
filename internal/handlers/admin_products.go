package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"

	"github.com/romich96/AlexCoffee/internal/models"
)

const (
	photoLargeWidth = 800
	photoSmallWidth = 300
	uploadDir       = "static/uploads"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	// Admin sees ALL products including unavailable ones
	products, err := h.Store.GetAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Products":  products,
		"Flashes":   GetFlash(session),
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) AddProductForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_add_product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// parseProductForm validates the shared create/update fields.
func parseProductForm(r *http.Request) (*models.Product, map[string]string) {
	errors := make(map[string]string)

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		errors["title"] = "Title is required."
	}

	priceStr := r.FormValue("price")
	price, err := strconv.ParseFloat(priceStr, 64)
	if priceStr == "" {
		errors["price"] = "Price is required."
	} else if err != nil {
		errors["price"] = "Invalid price format."
	} else if price <= 0 {
		errors["price"] = "Price must be positive."
	}

	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		errors["category"] = "Category is required."
	}

	url := strings.TrimSpace(r.FormValue("url"))
	if url == "" {
		url = models.Slugify(title)
	}
	article := strings.TrimSpace(r.FormValue("article"))
	if article == "" {
		article = models.GenerateArticle()
	}

	return &models.Product{
		Title:       title,
		URL:         url,
		Article:     article,
		Description: r.FormValue("description"),
		CategoryID:  categoryID,
		Price:       price,
		Available:   r.FormValue("available") != "false",
	}, errors
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	product, errors := parseProductForm(r)
	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	// Photo is optional on create.
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		photo, err := h.savePhoto(file, header, product.Title)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
			http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
			return
		}
		product.PhotoID = photo.ID
	}

	if err := h.Store.CreateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product to database."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product added successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// savePhoto decodes the upload, writes resized large and small jpeg
// renditions under static/uploads and records a photo row.
func (h *AdminHandler) savePhoto(file multipart.File, header *multipart.FileHeader, title string) (*models.Photo, error) {
	var img image.Image
	var err error
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return nil, fmt.Errorf("unsupported image format, only PNG, JPG, JPEG are allowed")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image")
	}

	base := uuid.New().String()
	large := base + ".jpg"
	small := base + "_small.jpg"

	if err := writeJPEG(filepath.Join(uploadDir, large), resize.Resize(photoLargeWidth, 0, img, resize.Lanczos3)); err != nil {
		return nil, err
	}
	if err := writeJPEG(filepath.Join(uploadDir, small), resize.Resize(photoSmallWidth, 0, img, resize.Lanczos3)); err != nil {
		return nil, err
	}

	photo := &models.Photo{
		Title:    title + " " + base,
		URLLarge: "/static/uploads/" + large,
		URLSmall: "/static/uploads/" + small,
	}
	if err := h.Store.CreatePhoto(photo); err != nil {
		return nil, fmt.Errorf("error saving photo record")
	}
	return photo, nil
}

func writeJPEG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error saving image file")
	}
	defer out.Close()
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 80}); err != nil {
		return fmt.Errorf("error encoding image")
	}
	return nil
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_edit_product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Product":    product,
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	product, errors := parseProductForm(r)
	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/admin/products/edit?id="+strconv.FormatInt(id, 10), http.StatusSeeOther)
		return
	}
	product.ID = id

	if err := h.Store.UpdateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		photo, err := h.savePhoto(file, header, product.Title)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
			http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
			return
		}
		if err := h.Store.UpdateProductPhoto(id, photo.ID); err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product photo."})
			http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
			return
		}
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product updated successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteProduct(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}
