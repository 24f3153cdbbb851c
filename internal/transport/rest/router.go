package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/enterprise-access/internal/auth"
	"github.com/frahmantamala/enterprise-access/internal/enterprise"
	"github.com/frahmantamala/enterprise-access/internal/permission"
	"github.com/frahmantamala/enterprise-access/internal/role"
	"github.com/frahmantamala/enterprise-access/internal/transport/middleware"
	"github.com/frahmantamala/enterprise-access/internal/transport/swagger"
	"github.com/frahmantamala/enterprise-access/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Permission slugs guarding the management API. The seeder registers the
// same catalog.
const (
	PermReadUsers   = "READ_USERS"
	PermCreateUsers = "CREATE_USERS"
	PermUpdateUsers = "UPDATE_USERS"

	PermReadRoles   = "READ_ROLES"
	PermCreateRoles = "CREATE_ROLES"
	PermUpdateRoles = "UPDATE_ROLES"

	PermReadPermissions   = "READ_PERMISSIONS"
	PermCreatePermissions = "CREATE_PERMISSIONS"
	PermUpdatePermissions = "UPDATE_PERMISSIONS"

	PermReadEnterprise = "READ_ENTERPRISE"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	enterpriseHandler *enterprise.Handler,
	userHandler *user.Handler,
	roleHandler *role.Handler,
	permissionHandler *permission.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRBACAuthorization(logger)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get(swagger.DocumentPath, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)

			sr.Group(func(ar chi.Router) {
				ar.Use(authHandler.AuthMiddleware)
				ar.Post("/logout", authHandler.Logout)
			})
		})

		// Public signup: the endpoint that creates the tenant cannot require
		// a tenant's credentials.
		r.Post("/enterprises", enterpriseHandler.CreateEnterprise)

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)
			pr.Patch("/users/me/password", userHandler.ChangePassword)

			pr.Group(func(er chi.Router) {
				er.Use(rbac.RequirePermissions(PermReadEnterprise))
				er.Get("/enterprises/me", enterpriseHandler.GetCurrentEnterprise)
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.With(rbac.RequirePermissions(PermReadUsers)).Get("/", userHandler.GetUsers)
				ur.With(rbac.RequirePermissions(PermReadUsers)).Get("/by-role/{roleId}", userHandler.GetUsersByRole)
				ur.With(rbac.RequirePermissions(PermCreateUsers)).Post("/", userHandler.CreateUser)
				ur.With(rbac.RequirePermissions(PermUpdateUsers)).Patch("/{id}/roles", userHandler.UpdateUserRoles)
				ur.With(rbac.RequirePermissions(PermUpdateUsers)).Patch("/{id}/block", userHandler.BlockUser)
				ur.With(rbac.RequirePermissions(PermUpdateUsers)).Delete("/{id}", userHandler.DeleteUser)
			})

			pr.Route("/roles", func(rr chi.Router) {
				rr.With(rbac.RequirePermissions(PermReadRoles)).Get("/", roleHandler.GetRoles)
				rr.With(rbac.RequirePermissions(PermReadRoles)).Get("/{id}", roleHandler.GetRole)
				rr.With(rbac.RequirePermissions(PermCreateRoles)).Post("/", roleHandler.CreateRole)
				rr.With(rbac.RequirePermissions(PermUpdateRoles)).Patch("/{id}", roleHandler.UpdateRole)
			})

			pr.Route("/permissions", func(pmr chi.Router) {
				pmr.With(rbac.RequirePermissions(PermReadPermissions)).Get("/", permissionHandler.GetPermissions)
				pmr.With(rbac.RequirePermissions(PermReadPermissions)).Get("/{id}", permissionHandler.GetPermission)
				pmr.With(rbac.RequirePermissions(PermCreatePermissions)).Post("/", permissionHandler.CreatePermission)
				pmr.With(rbac.RequirePermissions(PermUpdatePermissions)).Patch("/{id}", permissionHandler.UpdatePermission)
			})
		})
	})
}
