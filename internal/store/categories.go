package store

import (
	"database/sql"
	"strconv"

	"github.com/romich96/AlexCoffee/internal/models"
)

func (s *Store) CreateCategory(c *models.Category) error {
	query := `INSERT INTO categories (title, url, description, photo_id) VALUES (?, ?, ?, ?)`
	res, err := s.DB.Exec(query, c.Title, c.URL, c.Description, c.PhotoID)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetCategoryByID(id int64) (*models.Category, error) {
	query := `SELECT c.id, c.title, c.url, c.description, c.photo_id, COALESCE(ph.url_small, '')
		FROM categories c LEFT JOIN photos ph ON c.photo_id = ph.id WHERE c.id = ?`
	var c models.Category
	err := s.DB.QueryRow(query, id).Scan(&c.ID, &c.Title, &c.URL, &c.Description, &c.PhotoID, &c.PhotoSmall)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "category", Key: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetCategoryByURL(url string) (*models.Category, error) {
	query := `SELECT c.id, c.title, c.url, c.description, c.photo_id, COALESCE(ph.url_small, '')
		FROM categories c LEFT JOIN photos ph ON c.photo_id = ph.id WHERE c.url = ?`
	var c models.Category
	err := s.DB.QueryRow(query, url).Scan(&c.ID, &c.Title, &c.URL, &c.Description, &c.PhotoID, &c.PhotoSmall)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "category", Key: url}
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetAllCategories() ([]models.Category, error) {
	query := `SELECT c.id, c.title, c.url, c.description, c.photo_id, COALESCE(ph.url_small, '')
		FROM categories c LEFT JOIN photos ph ON c.photo_id = ph.id ORDER BY c.title`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.URL, &c.Description, &c.PhotoID, &c.PhotoSmall); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) UpdateCategory(c *models.Category) error {
	query := `UPDATE categories SET title = ?, url = ?, description = ?, photo_id = ? WHERE id = ?`
	_, err := s.DB.Exec(query, c.Title, c.URL, c.Description, c.PhotoID, c.ID)
	return err
}

func (s *Store) DeleteCategory(id int64) error {
	_, err := s.DB.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
