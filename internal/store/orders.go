package store

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/romich96/AlexCoffee/internal/models"
)

// CreateOrder persists the order and its sale position snapshot in one
// transaction and assigns the sequential order number from the row id.
func (s *Store) CreateOrder(order *models.Order) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO orders (number, status, client_id, manager_id, address, description, created_at)
		VALUES ('', ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, order.Status, order.ClientID, nullableID(order.ManagerID), order.Address, order.Description)
	if err != nil {
		return err
	}

	order.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	order.Number = models.FormatNumber(order.ID)

	if _, err := tx.Exec(`UPDATE orders SET number = ? WHERE id = ?`, order.Number, order.ID); err != nil {
		return err
	}

	for i := range order.Positions {
		pos := &order.Positions[i]
		res, err := tx.Exec(`
			INSERT INTO sale_positions (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)
		`, order.ID, pos.ProductID, pos.Quantity, pos.Price)
		if err != nil {
			return err
		}
		if pos.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	order.CreatedAt = time.Now()
	return nil
}

func (s *Store) GetOrderByID(id int64) (*models.Order, error) {
	query := `
		SELECT o.id, o.number, o.status, o.client_id, o.manager_id, o.address, o.description, o.created_at,
			u.name, u.email, u.phone
		FROM orders o
		JOIN users u ON o.client_id = u.id
		WHERE o.id = ?
	`
	row := s.DB.QueryRow(query, id)

	var o models.Order
	var client models.User
	var managerID sql.NullInt64
	err := row.Scan(&o.ID, &o.Number, &o.Status, &o.ClientID, &managerID, &o.Address, &o.Description, &o.CreatedAt,
		&client.Name, &client.Email, &client.Phone)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "order", Key: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	client.ID = o.ClientID
	client.Role = models.RoleClient
	o.Client = &client
	o.ManagerID = managerID.Int64

	positions, err := s.getOrderPositions(o.ID)
	if err != nil {
		return nil, err
	}
	o.Positions = positions
	return &o, nil
}

func (s *Store) getOrderPositions(orderID int64) ([]models.SalePosition, error) {
	query := `
		SELECT sp.id, sp.product_id, COALESCE(p.title, ''), COALESCE(p.url, ''), sp.quantity, sp.price
		FROM sale_positions sp
		LEFT JOIN products p ON sp.product_id = p.id
		WHERE sp.order_id = ?
		ORDER BY sp.id
	`
	rows, err := s.DB.Query(query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []models.SalePosition
	for rows.Next() {
		var sp models.SalePosition
		if err := rows.Scan(&sp.ID, &sp.ProductID, &sp.ProductTitle, &sp.ProductURL, &sp.Quantity, &sp.Price); err != nil {
			return nil, err
		}
		positions = append(positions, sp)
	}
	return positions, rows.Err()
}

func (s *Store) GetAllOrders(limit, offset int) ([]models.Order, error) {
	query := `
		SELECT o.id, o.number, o.status, o.client_id, o.manager_id, o.address, o.description, o.created_at,
			u.name, u.email, u.phone
		FROM orders o
		JOIN users u ON o.client_id = u.id
		ORDER BY o.created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.DB.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var client models.User
		var managerID sql.NullInt64
		if err := rows.Scan(&o.ID, &o.Number, &o.Status, &o.ClientID, &managerID, &o.Address, &o.Description, &o.CreatedAt,
			&client.Name, &client.Email, &client.Phone); err != nil {
			return nil, err
		}
		client.ID = o.ClientID
		o.Client = &client
		o.ManagerID = managerID.Int64
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		positions, err := s.getOrderPositions(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Positions = positions
	}
	return orders, nil
}

func (s *Store) GetTotalOrdersCount() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

// UpdateOrderStatus records a status transition and the manager who made it.
func (s *Store) UpdateOrderStatus(id int64, status models.Status, managerID int64) error {
	_, err := s.DB.Exec(`UPDATE orders SET status = ?, manager_id = ? WHERE id = ?`, status, nullableID(managerID), id)
	return err
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
