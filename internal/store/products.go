package store

import (
	"database/sql"
	"strconv"

	"github.com/romich96/AlexCoffee/internal/models"
)

const productColumns = `p.id, p.title, p.url, p.article, p.description, p.category_id,
	COALESCE(c.title, '') as category, p.photo_id,
	COALESCE(ph.url_small, '') as photo_small, COALESCE(ph.url_large, '') as photo_large,
	p.price, p.available, p.created_at`

const productFrom = `FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN photos ph ON p.photo_id = ph.id`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Title, &p.URL, &p.Article, &p.Description, &p.CategoryID,
		&p.Category, &p.PhotoID, &p.PhotoSmall, &p.PhotoLarge, &p.Price, &p.Available, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProduct(p *models.Product) error {
	query := `
		INSERT INTO products (title, url, article, description, category_id, photo_id, price, available, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, p.Title, p.URL, p.Article, p.Description, p.CategoryID, p.PhotoID, p.Price, p.Available)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetProductByID(id int64) (*models.Product, error) {
	row := s.DB.QueryRow(`SELECT `+productColumns+` `+productFrom+` WHERE p.id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "product", Key: strconv.FormatInt(id, 10)}
	}
	return p, err
}

func (s *Store) GetProductByURL(url string) (*models.Product, error) {
	row := s.DB.QueryRow(`SELECT `+productColumns+` `+productFrom+` WHERE p.url = ?`, url)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "product", Key: url}
	}
	return p, err
}

func (s *Store) GetProductByArticle(article string) (*models.Product, error) {
	row := s.DB.QueryRow(`SELECT `+productColumns+` `+productFrom+` WHERE p.article = ?`, article)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "product", Key: article}
	}
	return p, err
}

func (s *Store) queryProducts(query string, args ...any) ([]models.Product, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetAvailableProducts returns products shown on the storefront.
func (s *Store) GetAvailableProducts() ([]models.Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` ` + productFrom + `
		WHERE p.available = 1 ORDER BY p.created_at DESC`)
}

// GetRandomProducts returns up to limit random available products for the home page.
func (s *Store) GetRandomProducts(limit int) ([]models.Product, error) {
	return s.queryProducts(`SELECT `+productColumns+` `+productFrom+`
		WHERE p.available = 1 ORDER BY RANDOM() LIMIT ?`, limit)
}

func (s *Store) GetProductsByCategory(categoryID int64) ([]models.Product, error) {
	return s.queryProducts(`SELECT `+productColumns+` `+productFrom+`
		WHERE p.available = 1 AND p.category_id = ? ORDER BY p.created_at DESC`, categoryID)
}

// SearchProducts matches available products by title, case-insensitive.
func (s *Store) SearchProducts(term string) ([]models.Product, error) {
	return s.queryProducts(`SELECT `+productColumns+` `+productFrom+`
		WHERE p.available = 1 AND LOWER(p.title) LIKE LOWER(?) ORDER BY p.title`, "%"+term+"%")
}

// GetAllProducts returns every product including unavailable ones (admin view).
func (s *Store) GetAllProducts() ([]models.Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` ` + productFrom + ` ORDER BY p.created_at DESC`)
}

func (s *Store) UpdateProduct(p *models.Product) error {
	query := `
		UPDATE products
		SET title = ?, url = ?, article = ?, description = ?, category_id = ?, price = ?, available = ?
		WHERE id = ?
	`
	_, err := s.DB.Exec(query, p.Title, p.URL, p.Article, p.Description, p.CategoryID, p.Price, p.Available, p.ID)
	return err
}

func (s *Store) UpdateProductPhoto(id, photoID int64) error {
	_, err := s.DB.Exec(`UPDATE products SET photo_id = ? WHERE id = ?`, photoID, id)
	return err
}

func (s *Store) DeleteProduct(id int64) error {
	_, err := s.DB.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}
