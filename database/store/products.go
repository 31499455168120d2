package store

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"luxeshop/model"
)

type ProductStore struct {
	db *sqlx.DB
}

func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `p.id,
	   p.name,
	   p.description,
	   p.price,
	   p.stock_quantity,
	   p.image_url,
	   p.category_id,
	   c.name AS category_name,
	   p.created_at,
	   p.updated_at`

// ListProducts returns the in-stock storefront page plus the total row
// count for pagination. Params are expected to be sanitized by the caller.
func (s *ProductStore) ListProducts(params model.ProductListParams) ([]model.Product, int64, error) {
	conditions := []string{"p.stock_quantity > 0"}
	args := make([]interface{}, 0, 3)

	if params.CategoryID > 0 {
		args = append(args, params.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}
	where := strings.Join(conditions, " AND ")

	countSQL := `SELECT COUNT(*) FROM products p WHERE ` + where
	var total int64
	if err := s.db.Get(&total, countSQL, args...); err != nil {
		return nil, 0, mapError(err)
	}

	args = append(args, params.Limit, (params.Page-1)*params.Limit)
	SQL := fmt.Sprintf(`SELECT %s
			FROM products p
					 LEFT JOIN categories c ON p.category_id = c.id
			WHERE %s
			ORDER BY p.name ASC
			LIMIT $%d OFFSET $%d`, productColumns, where, len(args)-1, len(args))

	list := make([]model.Product, 0)
	if err := s.db.Select(&list, SQL, args...); err != nil {
		return nil, 0, mapError(err)
	}
	return list, total, nil
}

// ListAllProducts includes out-of-stock rows, for the admin inventory view.
func (s *ProductStore) ListAllProducts() ([]model.Product, error) {
	SQL := `SELECT ` + productColumns + `
			FROM products p
					 LEFT JOIN categories c ON p.category_id = c.id
			ORDER BY p.name ASC`
	list := make([]model.Product, 0)
	err := s.db.Select(&list, SQL)
	return list, mapError(err)
}

func (s *ProductStore) GetProductByID(id int64) (model.Product, error) {
	SQL := `SELECT ` + productColumns + `
			FROM products p
					 LEFT JOIN categories c ON p.category_id = c.id
			WHERE p.id = $1`
	var p model.Product
	err := s.db.Get(&p, SQL, id)
	return p, mapError(err)
}

func (s *ProductStore) CreateProduct(p model.Product) (int64, error) {
	SQL := `INSERT INTO products(name, description, price, stock_quantity, image_url, category_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`
	var id int64
	err := s.db.QueryRowx(SQL, p.Name, p.Description, p.Price, p.StockQuantity, p.ImageURL, p.CategoryID).Scan(&id)
	return id, mapError(err)
}

func (s *ProductStore) UpdateProduct(id int64, upd model.ProductUpdate) error {
	b := newUpdateBuilder("products")
	if upd.Name != nil {
		b.set("name", *upd.Name)
	}
	if upd.Description != nil {
		b.set("description", *upd.Description)
	}
	if upd.Price != nil {
		b.set("price", *upd.Price)
	}
	if upd.StockQuantity != nil {
		b.set("stock_quantity", *upd.StockQuantity)
	}
	if upd.CategoryID != nil {
		b.set("category_id", *upd.CategoryID)
	}
	if upd.ImageURL != nil {
		b.set("image_url", *upd.ImageURL)
	}
	return b.exec(s.db, id)
}

func (s *ProductStore) DeleteProduct(id int64) error {
	SQL := `DELETE FROM products WHERE id = $1`
	res, err := s.db.Exec(SQL, id)
	if err != nil {
		return mapError(err)
	}
	return requireRows(res)
}

func (s *ProductStore) CountProducts() (int64, error) {
	SQL := `SELECT COUNT(*) FROM products`
	var count int64
	err := s.db.Get(&count, SQL)
	return count, mapError(err)
}

// InventoryValue is the sum of price * stock over all products.
func (s *ProductStore) InventoryValue() (decimal.Decimal, error) {
	SQL := `SELECT COALESCE(SUM(price * stock_quantity), 0) FROM products`
	var value decimal.Decimal
	err := s.db.Get(&value, SQL)
	return value, mapError(err)
}
