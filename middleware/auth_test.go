package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"luxeshop/model"
)

type stubUserLoader struct {
	user model.User
	err  error
}

func (s *stubUserLoader) GetUserByID(id int64) (model.User, error) {
	return s.user, s.err
}

func okHandler(captured **http.Request) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured = r
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	account := model.User{ID: 3, Username: "shopper", Role: model.RoleCustomer}

	t.Run("valid token attaches user", func(t *testing.T) {
		auth := NewAuth("test-secret", time.Hour, &stubUserLoader{user: account})
		token, err := auth.GenerateToken(account.ID, account.Role)
		assert.NoError(t, err)

		var seen *http.Request
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		auth.Authenticate(okHandler(&seen)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		user, ok := UserFromContext(seen)
		assert.True(t, ok)
		assert.Equal(t, account.ID, user.ID)
	})

	t.Run("missing token", func(t *testing.T) {
		auth := NewAuth("test-secret", time.Hour, &stubUserLoader{user: account})
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		rec := httptest.NewRecorder()

		auth.Authenticate(okHandler(nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		auth := NewAuth("test-secret", time.Hour, &stubUserLoader{user: account})
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		auth.Authenticate(okHandler(nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuth("other-secret", time.Hour, &stubUserLoader{user: account})
		token, err := other.GenerateToken(account.ID, account.Role)
		assert.NoError(t, err)

		auth := NewAuth("test-secret", time.Hour, &stubUserLoader{user: account})
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		auth.Authenticate(okHandler(nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		auth := NewAuth("test-secret", -time.Minute, &stubUserLoader{user: account})
		token, err := auth.GenerateToken(account.ID, account.Role)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		auth.Authenticate(okHandler(nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		loader := &stubUserLoader{err: assert.AnError}
		auth := NewAuth("test-secret", time.Hour, loader)
		token, err := auth.GenerateToken(account.ID, account.Role)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		auth.Authenticate(okHandler(nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("customer blocked", func(t *testing.T) {
		account := model.User{ID: 3, Role: model.RoleCustomer}
		auth := NewAuth("test-secret", time.Hour, &stubUserLoader{user: account})
		token, err := auth.GenerateToken(account.ID, account.Role)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		auth.Authenticate(auth.RequireAdmin(okHandler(nil))).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		account := model.User{ID: 1, Role: model.RoleAdmin}
		auth := NewAuth("test-secret", time.Hour, &stubUserLoader{user: account})
		token, err := auth.GenerateToken(account.ID, account.Role)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		auth.Authenticate(auth.RequireAdmin(okHandler(nil))).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no user in context", func(t *testing.T) {
		auth := NewAuth("test-secret", time.Hour, &stubUserLoader{})
		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		rec := httptest.NewRecorder()

		auth.RequireAdmin(okHandler(nil)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
