package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/contacthub/contacthub-backend/internal/handlers"
	"github.com/contacthub/contacthub-backend/internal/middleware"
	"github.com/contacthub/contacthub-backend/internal/models"
	"github.com/contacthub/contacthub-backend/internal/services"
)

// Deps carries everything the route table wires into handlers and
// middleware. Constructed once in main.
type Deps struct {
	Users     *services.UserStore
	Contacts  *services.ContactStore
	Auth      *services.AuthService
	Cloud     *services.CloudinaryService
	JWTSecret string
}

// Setup mounts the versioned API under /api/v1.
func Setup(r chi.Router, d Deps) {
	authHandler := handlers.NewAuthHandler(d.Auth)
	adminHandler := handlers.NewAdminHandler(d.Users)
	usersHandler := handlers.NewUsersHandler(d.Users)
	contactsHandler := handlers.NewContactsHandler(d.Contacts)
	uploadHandler := handlers.NewUploadHandler(d.Cloud)

	authenticate := middleware.Authenticate(d.Users, d.JWTSecret)
	adminOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	userOnly := middleware.RequireRoles(models.RoleUser)
	anyRole := middleware.RequireRoles(models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.ValidateSignup(d.Users)).Post("/signup", authHandler.Signup)
			r.With(middleware.ValidateSignin(d.Users)).Post("/signin", authHandler.Signin)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
			r.With(authenticate).Get("/me", authHandler.Me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)
			r.With(adminOnly).Post("/users/create", adminHandler.CreateUser)
			r.With(adminOnly).Get("/users", adminHandler.GetUsers)
			r.With(anyRole).Get("/users/{id}", adminHandler.GetUserByID)
			r.With(adminOnly).Put("/users/{id}", adminHandler.UpdateUser)
			r.With(adminOnly).Delete("/users/{id}", adminHandler.DeleteUser)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authenticate)
			r.With(anyRole).Get("/user/{userId}/other-users", usersHandler.OtherUsers)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Use(authenticate)
			r.With(anyRole).Get("/user/{userId}", contactsHandler.List)
			r.With(userOnly).Post("/user/{userId}/create", contactsHandler.Create)
			r.With(anyRole).Get("/user/{userId}/contact/{contactId}", contactsHandler.Get)
			r.With(userOnly).Put("/user/{userId}/contact/{contactId}", contactsHandler.Update)
			r.With(userOnly).Delete("/user/{userId}/contact/{contactId}", contactsHandler.Delete)
			r.With(userOnly).Post("/contact/{contactId}/share/{userId}", contactsHandler.Share)
			r.With(userOnly).Post("/contact/{contactId}/unshare/{userId}", contactsHandler.Unshare)
		})

		r.Route("/images", func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/upload", uploadHandler.Upload)
		})
	})
}
