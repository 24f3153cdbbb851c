package auth

import (
	"log/slog"
	"net/http"

	internal "github.com/frahmantamala/enterprise-access/internal"
)

// RBACAuthorization guards routes with permission checks against the slugs
// embedded in the caller's access token.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

// RequirePermissions passes when the caller holds at least one of the given
// slugs. With no slugs given the guard only requires authentication.
func (ra *RBACAuthorization) RequirePermissions(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				ra.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if len(permissions) > 0 && !user.HasAnyPermission(permissions) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required_permissions", permissions,
					"user_permissions", user.Permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
