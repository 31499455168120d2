package store

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"luxeshop/model"
)

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, username, email, password, first_name, last_name, phone, address, role, created_at, updated_at`

func (s *UserStore) CreateUser(u model.User) (int64, error) {
	SQL := `INSERT INTO users(username, email, password, first_name, last_name, phone, address, role)
			VALUES ($1, TRIM(LOWER($2)), $3, $4, $5, $6, $7, $8)
			RETURNING id`
	var id int64
	err := s.db.QueryRowx(SQL, u.Username, u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Address, u.Role).Scan(&id)
	return id, mapError(err)
}

func (s *UserStore) GetUserByID(id int64) (model.User, error) {
	SQL := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var u model.User
	err := s.db.Get(&u, SQL, id)
	return u, mapError(err)
}

func (s *UserStore) GetUserByEmail(email string) (model.User, error) {
	SQL := `SELECT ` + userColumns + ` FROM users WHERE email = TRIM(LOWER($1))`
	var u model.User
	err := s.db.Get(&u, SQL, email)
	return u, mapError(err)
}

// FindByEmailOrUsername is the duplicate check at registration time. A
// zero-row result is reported as ErrNotFound.
func (s *UserStore) FindByEmailOrUsername(email, username string) (model.User, error) {
	SQL := `SELECT ` + userColumns + ` FROM users WHERE email = TRIM(LOWER($1)) OR username = $2`
	var u model.User
	err := s.db.Get(&u, SQL, email, username)
	return u, mapError(err)
}

func (s *UserStore) UpdateProfile(id int64, upd model.ProfileUpdate) error {
	b := newUpdateBuilder("users")
	if upd.FirstName != nil {
		b.set("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		b.set("last_name", *upd.LastName)
	}
	if upd.Phone != nil {
		b.set("phone", *upd.Phone)
	}
	if upd.Address != nil {
		b.set("address", *upd.Address)
	}
	return b.exec(s.db, id)
}

func (s *UserStore) UpdatePassword(id int64, passwordHash string) error {
	SQL := `UPDATE users SET password = $1, updated_at = now() WHERE id = $2`
	res, err := s.db.Exec(SQL, passwordHash, id)
	if err != nil {
		return mapError(err)
	}
	return requireRows(res)
}

func requireRows(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
