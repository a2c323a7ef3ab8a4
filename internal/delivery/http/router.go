// Package http wires the controllers into the application router.
package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventsite/internal/delivery/http/controllers"
	"eventsite/internal/delivery/http/middleware"
	"eventsite/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Literal routes are registered before the /{slug} pattern so they are not
// shadowed by slug lookups.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier)
	requireAdmin := middleware.RequireAdmin(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Public catalog
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{slug}", optionalAuth(eventController.GetEvent))

	// Registrations
	mux.HandleFunc("POST /events/{slug}/register", requireAuth(registrationController.Register))
	mux.HandleFunc("DELETE /registrations", requireAuth(registrationController.DropRegistrations))

	// Admin catalog
	mux.HandleFunc("GET /admin/events", requireAdmin(eventController.ListAllEvents))
	mux.HandleFunc("POST /admin/events", requireAdmin(eventController.CreateEvent))
	mux.HandleFunc("PUT /admin/events/{id}", requireAdmin(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /admin/events/{id}", requireAdmin(eventController.DeleteEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
