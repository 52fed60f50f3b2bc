package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffhive/hrms-backend-go/internal/domain/user"
	"github.com/staffhive/hrms-backend-go/internal/handler/http/response"
)

// RequireOwner requires owner role.
func RequireOwner(next http.Handler) http.Handler {
	return requireRoles(next, user.RoleOwner)
}

// RequireManager requires manager or owner role.
func RequireManager(next http.Handler) http.Handler {
	return requireRoles(next, user.RoleManager, user.RoleOwner)
}

// RequireMember requires any role attached to a company.
func RequireMember(next http.Handler) http.Handler {
	return requireRoles(next, user.RoleEmployee, user.RoleManager, user.RoleOwner)
}

func requireRoles(next http.Handler, roles ...user.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Insufficient permissions")
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Insufficient permissions")
			return
		}

		role := user.Role(roleStr)
		for _, allowed := range roles {
			if role == allowed {
				next.ServeHTTP(w, r)
				return
			}
		}

		response.Forbidden(w, "Insufficient permissions")
	})
}
