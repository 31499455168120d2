package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"luxeshop/database/store"
	"luxeshop/model"
)

type mockUserStore struct {
	createdID int64
	created   *model.User
	createErr error

	byEmail    model.User
	byEmailErr error

	byID    model.User
	byIDErr error

	existing    model.User
	existingErr error

	profileErr  error
	passwordErr error
	newHash     string
}

func (m *mockUserStore) CreateUser(u model.User) (int64, error) {
	m.created = &u
	return m.createdID, m.createErr
}
func (m *mockUserStore) GetUserByID(id int64) (model.User, error) { return m.byID, m.byIDErr }
func (m *mockUserStore) GetUserByEmail(email string) (model.User, error) {
	return m.byEmail, m.byEmailErr
}
func (m *mockUserStore) FindByEmailOrUsername(email, username string) (model.User, error) {
	return m.existing, m.existingErr
}
func (m *mockUserStore) UpdateProfile(id int64, upd model.ProfileUpdate) error {
	return m.profileErr
}
func (m *mockUserStore) UpdatePassword(id int64, passwordHash string) error {
	m.newHash = passwordHash
	return m.passwordErr
}

type stubTokenIssuer struct {
	token string
	err   error
}

func (s *stubTokenIssuer) GenerateToken(userID int64, role model.Role) (string, error) {
	return s.token, s.err
}

type hasher struct {
	compareErr error
}

func (hasher) Hash(password string) (string, error) { return "hashed-" + password, nil }
func (h hasher) Compare(hash, password string) error { return h.compareErr }

func TestRegister(t *testing.T) {
	validBody := `{
		"username": "newshopper",
		"email": "new@example.com",
		"password": "secret123",
		"firstName": "New",
		"lastName": "Shopper"
	}`

	t.Run("registered with token", func(t *testing.T) {
		users := &mockUserStore{createdID: 12, existingErr: store.ErrNotFound}
		h := NewAuthHandler(users, &stubTokenIssuer{token: "tok"}, hasher{})
		rec := httptest.NewRecorder()

		h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(validBody)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "hashed-secret123", users.created.Password)
		assert.Equal(t, model.RoleCustomer, users.created.Role)

		resp := decodeResponse(t, rec)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "tok", data["token"])
		user := data["user"].(map[string]interface{})
		assert.Equal(t, float64(12), user["id"])
		assert.NotContains(t, user, "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := &mockUserStore{existing: model.User{Email: "new@example.com", Username: "other"}}
		h := NewAuthHandler(users, &stubTokenIssuer{}, hasher{})
		rec := httptest.NewRecorder()

		h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(validBody)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "User with this email already exists", resp.Message)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := &mockUserStore{existing: model.User{Email: "other@example.com", Username: "newshopper"}}
		h := NewAuthHandler(users, &stubTokenIssuer{}, hasher{})
		rec := httptest.NewRecorder()

		h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(validBody)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "Username is already taken", resp.Message)
	})

	t.Run("short password", func(t *testing.T) {
		body := strings.Replace(validBody, "secret123", "abc", 1)
		h := NewAuthHandler(&mockUserStore{existingErr: store.ErrNotFound}, &stubTokenIssuer{}, hasher{})
		rec := httptest.NewRecorder()

		h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Contains(t, resp.Errors, "password")
	})
}

func TestLogin(t *testing.T) {
	account := model.User{ID: 3, Email: "shopper@example.com", Password: "stored-hash", Role: model.RoleCustomer}
	validBody := `{"email":"shopper@example.com","password":"secret123"}`

	t.Run("correct credentials return token", func(t *testing.T) {
		users := &mockUserStore{byEmail: account}
		h := NewAuthHandler(users, &stubTokenIssuer{token: "tok"}, hasher{})
		rec := httptest.NewRecorder()

		h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(validBody)))

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "tok", data["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &mockUserStore{byEmail: account}
		h := NewAuthHandler(users, &stubTokenIssuer{token: "tok"}, hasher{compareErr: errors.New("mismatch")})
		rec := httptest.NewRecorder()

		h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(validBody)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "Invalid credentials", resp.Message)
		assert.Nil(t, resp.Data)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := &mockUserStore{byEmailErr: store.ErrNotFound}
		h := NewAuthHandler(users, &stubTokenIssuer{}, hasher{})
		rec := httptest.NewRecorder()

		h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(validBody)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "Invalid credentials", resp.Message)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("rehashes on success", func(t *testing.T) {
		users := &mockUserStore{}
		h := NewAuthHandler(users, &stubTokenIssuer{}, hasher{})
		body := `{"currentPassword":"secret123","newPassword":"evenmoresecret"}`
		rec := httptest.NewRecorder()

		h.ChangePassword(rec, authedRequest(http.MethodPut, "/api/auth/change-password", body))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hashed-evenmoresecret", users.newHash)
	})

	t.Run("wrong current password", func(t *testing.T) {
		users := &mockUserStore{}
		h := NewAuthHandler(users, &stubTokenIssuer{}, hasher{compareErr: errors.New("mismatch")})
		body := `{"currentPassword":"wrong","newPassword":"evenmoresecret"}`
		rec := httptest.NewRecorder()

		h.ChangePassword(rec, authedRequest(http.MethodPut, "/api/auth/change-password", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, users.newHash)
	})
}
