package store

import (
	"database/sql"

	"github.com/romich96/AlexCoffee/internal/models"
)

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	query := `SELECT id, name, email, phone, username, password, role FROM users WHERE username = ?`
	row := s.DB.QueryRow(query, username)

	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Username, &user.Password, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns the most recent user for the email, case-insensitive,
// or nil if none exists.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, name, email, phone, username, password, role FROM users
		WHERE LOWER(email) = LOWER(?) ORDER BY id DESC LIMIT 1`
	row := s.DB.QueryRow(query, email)

	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Username, &user.Password, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateClient registers a self-registered customer. Credentials stay empty.
func (s *Store) CreateClient(user *models.User) error {
	query := `INSERT INTO users (name, email, phone, username, password, role) VALUES (?, ?, ?, '', '', ?)`
	res, err := s.DB.Exec(query, user.Name, user.Email, user.Phone, models.RoleClient)
	if err != nil {
		return err
	}
	user.Role = models.RoleClient
	user.ID, err = res.LastInsertId()
	return err
}

// CreateStaff is mainly for seeding managers and admins from the CLI.
func (s *Store) CreateStaff(name, username, hashedPassword string, role models.Role) error {
	query := `INSERT INTO users (name, email, phone, username, password, role) VALUES (?, '', '', ?, ?, ?)`
	_, err := s.DB.Exec(query, name, username, hashedPassword, role)
	return err
}

// GetStaff returns all users with manager or admin roles.
func (s *Store) GetStaff() ([]models.User, error) {
	query := `SELECT id, name, email, phone, username, password, role FROM users
		WHERE role IN (?, ?) ORDER BY name`
	rows, err := s.DB.Query(query, models.RoleAdmin, models.RoleManager)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Username, &u.Password, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) DeleteUser(id int64) error {
	_, err := s.DB.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}
