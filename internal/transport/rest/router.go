package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/assetdesk/asset-management/internal/asset"
	"github.com/assetdesk/asset-management/internal/auth"
	"github.com/assetdesk/asset-management/internal/category"
	"github.com/assetdesk/asset-management/internal/request"
	"github.com/assetdesk/asset-management/internal/transport/middleware"
	"github.com/assetdesk/asset-management/internal/transport/swagger"
	"github.com/assetdesk/asset-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, sqlxDB *sqlx.DB, policy *auth.Policy, authHandler *auth.Handler, userHandler *user.Handler, assetHandler *asset.Handler, requestHandler *request.Handler, categoryHandler *category.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		// Registration is open, the issued token comes back in X-Auth-Token
		if userHandler != nil {
			r.Post("/users", userHandler.Register)
		}

		// Public categories route (no auth required)
		if categoryHandler != nil {
			r.Get("/categories", categoryHandler.GetCategories)
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// User account routes
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)

					pr.Group(func(ar chi.Router) {
						ar.Use(policy.RequireAdmin)
						ar.Get("/users", userHandler.ListUsers)
						ar.Get("/users/{id}", userHandler.GetUser)
						ar.Patch("/users/{id}/role", userHandler.UpdateRole)
					})
				}

				// Asset register routes, reads are open to every authenticated
				// user, mutations require an administrator
				if assetHandler != nil {
					pr.Route("/assets", func(er chi.Router) {
						er.Get("/", assetHandler.GetAllAssets)
						er.Get("/{id}", assetHandler.GetAsset)

						er.Group(func(mr chi.Router) {
							mr.Use(policy.RequireAdmin)
							mr.Post("/", assetHandler.CreateAsset)
							mr.Put("/{id}", assetHandler.UpdateAsset)
							mr.Delete("/{id}", assetHandler.DeleteAsset)
						})
					})
				}

				// Request workflow routes
				if requestHandler != nil {
					pr.Route("/requests", func(er chi.Router) {
						er.Post("/", requestHandler.CreateRequest)
						er.Get("/my-requests", requestHandler.GetMyRequests)

						er.Group(func(or chi.Router) {
							or.Use(auth.RequireCanViewRequest(sqlxDB, policy))
							or.Get("/{id}", requestHandler.GetRequest)
						})

						er.Group(func(mr chi.Router) {
							mr.Use(policy.RequireAdmin)
							mr.Get("/", requestHandler.GetAllRequests)
							mr.Put("/{id}/status", requestHandler.UpdateStatus)
							mr.Delete("/{id}", requestHandler.DeleteRequest)
						})
					})
				}

				// Category management, administrators only
				if categoryHandler != nil {
					pr.Group(func(mr chi.Router) {
						mr.Use(policy.RequireAdmin)
						mr.Post("/categories", categoryHandler.CreateCategory)
						mr.Delete("/categories/{id}", categoryHandler.DeleteCategory)
					})
				}
			})
		}
	})
}
