package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"luxeshop/model"
	"luxeshop/utils"
)

// UserLoader re-fetches the acting user so a token outlives its account by
// at most one request.
type UserLoader interface {
	GetUserByID(id int64) (model.User, error)
}

type Auth struct {
	secret []byte
	ttl    time.Duration
	users  UserLoader
}

func NewAuth(secret string, ttl time.Duration, users UserLoader) *Auth {
	return &Auth{secret: []byte(secret), ttl: ttl, users: users}
}

// GenerateToken issues an HS256 token carrying the user id and role.
func (a *Auth) GenerateToken(userID int64, role model.Role) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	claims["role"] = string(role)
	claims["exp"] = time.Now().Add(a.ttl).Unix()
	return token.SignedString(a.secret)
}

// Authenticate verifies the bearer token, re-fetches the user and stashes
// it in the request context.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawToken := bearerToken(r)
		if rawToken == "" {
			utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
			return
		}

		parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return a.secret, nil
		})
		if err != nil || !parsed.Valid {
			utils.RespondError(w, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, nil, "Invalid or expired token")
			return
		}
		rawID, ok := claims["user_id"].(float64)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, nil, "Invalid or expired token")
			return
		}

		user, err := a.users.GetUserByID(int64(rawID))
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, nil, "Invalid token - user not found")
			return
		}

		ctx := context.WithValue(r.Context(), UserContext, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
