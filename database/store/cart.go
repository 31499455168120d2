package store

import (
	"github.com/jmoiron/sqlx"

	"luxeshop/model"
)

type CartStore struct {
	db *sqlx.DB
}

func NewCartStore(db *sqlx.DB) *CartStore {
	return &CartStore{db: db}
}

const cartLineColumns = `ci.id AS cart_id,
	   p.id AS product_id,
	   p.name,
	   p.description,
	   p.price,
	   p.image_url,
	   p.stock_quantity,
	   ci.quantity,
	   (ci.quantity * p.price) AS subtotal,
	   ci.created_at`

func (s *CartStore) ListCart(userID int64) ([]model.CartLine, error) {
	SQL := `SELECT ` + cartLineColumns + `
			FROM cart_items ci
					 JOIN products p ON ci.product_id = p.id
			WHERE ci.user_id = $1
			ORDER BY ci.created_at DESC`
	list := make([]model.CartLine, 0)
	err := s.db.Select(&list, SQL, userID)
	return list, mapError(err)
}

// GetCartLine fetches one line scoped to its owner, so a foreign cart id
// reads as not found.
func (s *CartStore) GetCartLine(cartID, userID int64) (model.CartLine, error) {
	SQL := `SELECT ` + cartLineColumns + `
			FROM cart_items ci
					 JOIN products p ON ci.product_id = p.id
			WHERE ci.id = $1
			  AND ci.user_id = $2`
	var line model.CartLine
	err := s.db.Get(&line, SQL, cartID, userID)
	return line, mapError(err)
}

func (s *CartStore) FindCartLine(userID, productID int64) (model.CartLine, error) {
	SQL := `SELECT ` + cartLineColumns + `
			FROM cart_items ci
					 JOIN products p ON ci.product_id = p.id
			WHERE ci.user_id = $1
			  AND ci.product_id = $2`
	var line model.CartLine
	err := s.db.Get(&line, SQL, userID, productID)
	return line, mapError(err)
}

func (s *CartStore) AddCartLine(userID, productID int64, quantity int) error {
	SQL := `INSERT INTO cart_items(user_id, product_id, quantity) VALUES ($1, $2, $3)`
	_, err := s.db.Exec(SQL, userID, productID, quantity)
	return mapError(err)
}

func (s *CartStore) SetCartQuantity(cartID int64, quantity int) error {
	SQL := `UPDATE cart_items SET quantity = $1, updated_at = now() WHERE id = $2`
	res, err := s.db.Exec(SQL, quantity, cartID)
	if err != nil {
		return mapError(err)
	}
	return requireRows(res)
}

func (s *CartStore) RemoveCartLine(cartID, userID int64) error {
	SQL := `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`
	res, err := s.db.Exec(SQL, cartID, userID)
	if err != nil {
		return mapError(err)
	}
	return requireRows(res)
}

func (s *CartStore) ClearCart(userID int64) error {
	SQL := `DELETE FROM cart_items WHERE user_id = $1`
	_, err := s.db.Exec(SQL, userID)
	return mapError(err)
}

// CountCartItems is the badge count: the sum of quantities, not lines.
func (s *CartStore) CountCartItems(userID int64) (int, error) {
	SQL := `SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE user_id = $1`
	var count int
	err := s.db.Get(&count, SQL, userID)
	return count, mapError(err)
}
