package middleware

import (
	"net/http"

	"luxeshop/model"
	"luxeshop/utils"
)

type ContextKeys string

const UserContext ContextKeys = "user"

// UserFromContext returns the user attached by Authenticate.
func UserFromContext(r *http.Request) (model.User, bool) {
	user, ok := r.Context().Value(UserContext).(model.User)
	return user, ok
}

// RequireAdmin gates admin-only routes. It must run after Authenticate.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
			return
		}
		if user.Role != model.RoleAdmin {
			utils.RespondError(w, http.StatusForbidden, nil, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
