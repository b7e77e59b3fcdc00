package api

import (
	"net/http"
	"store_ratings/internal/api/handler"
	"store_ratings/internal/api/middleware"
	"store_ratings/internal/app/service"
	"store_ratings/internal/common/security"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	storeService *service.StoreService,
	ratingService *service.RatingService,
	adminService *service.AdminService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token when present and puts claims in context.
	// Whether a caller identity is required is decided per route group.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", func(auth chi.Router) {
			auth.Group(authHandler.RegisterPublicRoutes)
			auth.Group(func(protected chi.Router) {
				protected.Use(middleware.Authenticator)
				authHandler.RegisterProtectedRoutes(protected)
			})
		})

		// Store routes (public; aggregates computed on read)
		storeHandler := handler.NewStoreHandler(storeService)
		v1.Route("/stores", storeHandler.RegisterRoutes)

		// Rating submission (authenticated, any role)
		ratingHandler := handler.NewRatingHandler(ratingService)
		v1.Route("/ratings", func(ratings chi.Router) {
			ratings.Use(middleware.Authenticator)
			ratingHandler.RegisterRoutes(ratings)
		})

		// Owner dashboard (authenticated; policy narrows to OWNER)
		ownerHandler := handler.NewOwnerHandler(storeService)
		v1.Route("/owner", func(owner chi.Router) {
			owner.Use(middleware.Authenticator)
			ownerHandler.RegisterRoutes(owner)
		})

		// Admin surface (authenticated; policy narrows to ADMIN)
		adminHandler := handler.NewAdminHandler(adminService, storeService)
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.Authenticator)
			adminHandler.RegisterRoutes(admin)
		})
	})

	return r
}
