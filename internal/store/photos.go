package store

import (
	"database/sql"
	"strconv"

	"github.com/romich96/AlexCoffee/internal/models"
)

func (s *Store) CreatePhoto(p *models.Photo) error {
	query := `INSERT INTO photos (title, url_large, url_small) VALUES (?, ?, ?)`
	res, err := s.DB.Exec(query, p.Title, p.URLLarge, p.URLSmall)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetPhotoByID(id int64) (*models.Photo, error) {
	var p models.Photo
	err := s.DB.QueryRow(`SELECT id, title, url_large, url_small FROM photos WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.URLLarge, &p.URLSmall)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "photo", Key: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetPhotoByTitle(title string) (*models.Photo, error) {
	var p models.Photo
	err := s.DB.QueryRow(`SELECT id, title, url_large, url_small FROM photos WHERE title = ?`, title).
		Scan(&p.ID, &p.Title, &p.URLLarge, &p.URLSmall)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "photo", Key: title}
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeletePhoto(id int64) error {
	_, err := s.DB.Exec(`DELETE FROM photos WHERE id = ?`, id)
	return err
}
