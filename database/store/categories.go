package store

import (
	"github.com/jmoiron/sqlx"

	"luxeshop/model"
)

type CategoryStore struct {
	db *sqlx.DB
}

func NewCategoryStore(db *sqlx.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// ListCategories returns every category with its count of in-stock
// products.
func (s *CategoryStore) ListCategories() ([]model.CategoryWithCount, error) {
	SQL := `SELECT c.id,
				   c.name,
				   c.description,
				   c.created_at,
				   COUNT(p.id) FILTER (WHERE p.stock_quantity > 0) AS product_count
			FROM categories c
					 LEFT JOIN products p ON c.id = p.category_id
			GROUP BY c.id
			ORDER BY c.name ASC`
	list := make([]model.CategoryWithCount, 0)
	err := s.db.Select(&list, SQL)
	return list, mapError(err)
}

func (s *CategoryStore) GetCategoryByID(id int64) (model.CategoryWithCount, error) {
	SQL := `SELECT c.id,
				   c.name,
				   c.description,
				   c.created_at,
				   COUNT(p.id) FILTER (WHERE p.stock_quantity > 0) AS product_count
			FROM categories c
					 LEFT JOIN products p ON c.id = p.category_id
			WHERE c.id = $1
			GROUP BY c.id`
	var c model.CategoryWithCount
	err := s.db.Get(&c, SQL, id)
	return c, mapError(err)
}

func (s *CategoryStore) CreateCategory(name string, description *string) (model.CategoryWithCount, error) {
	SQL := `INSERT INTO categories(name, description) VALUES ($1, $2) RETURNING id, name, description, created_at`
	var c model.CategoryWithCount
	if err := s.db.QueryRowx(SQL, name, description).StructScan(&c.Category); err != nil {
		return model.CategoryWithCount{}, mapError(err)
	}
	return c, nil
}

func (s *CategoryStore) UpdateCategory(id int64, upd model.CategoryUpdate) error {
	b := newUpdateBuilder("categories")
	if upd.Name != nil {
		b.set("name", *upd.Name)
	}
	if upd.Description != nil {
		b.set("description", *upd.Description)
	}
	return b.exec(s.db, id)
}

// DeleteCategory relies on the RESTRICT foreign key: a category still
// referenced by products comes back as ErrInUse.
func (s *CategoryStore) DeleteCategory(id int64) error {
	SQL := `DELETE FROM categories WHERE id = $1`
	res, err := s.db.Exec(SQL, id)
	if err != nil {
		return mapError(err)
	}
	return requireRows(res)
}

func (s *CategoryStore) CountCategories() (int64, error) {
	SQL := `SELECT COUNT(*) FROM categories`
	var count int64
	err := s.db.Get(&count, SQL)
	return count, mapError(err)
}
