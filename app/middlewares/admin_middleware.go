package middlewares

import (
	"net/http"

	"github.com/unrolled/render"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/helpers"
	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

// RequireRole admits signed-in users holding one of roles. Admins are
// always admitted.
func RequireRole(rnd *render.Render, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.UserFromContext(r.Context())
			if user == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			if user.Role == models.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			zap.S().Infof("RequireRole: user %s (%s) denied %s %s", user.ID, user.Role, r.Method, r.URL.Path)
			_ = rnd.JSON(w, http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
		})
	}
}
