package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contacthub/contacthub-backend/internal/models"
	"github.com/contacthub/contacthub-backend/internal/response"
	"github.com/contacthub/contacthub-backend/internal/services"
	"github.com/contacthub/contacthub-backend/pkg/utils"
)

type contextKey string

const (
	userKey   contextKey = "auth_user"
	signupKey contextKey = "signup_payload"
	signinKey contextKey = "signin_payload"
)

// Authenticate verifies the bearer token, loads the referenced user
// (password excluded) and attaches it to the request context. 401 when the
// token is missing, fails verification, or the user no longer exists.
func Authenticate(users *services.UserStore, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				response.Error(w,http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}

			claims, err := utils.ParseToken(jwtSecret, token)
			if err != nil {
				response.Error(w,http.StatusUnauthorized, "Unauthorized: Invalid token")
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				response.Error(w,http.StatusUnauthorized, "Unauthorized: Invalid token")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				response.Error(w,http.StatusUnauthorized, "Unauthorized: Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles allows the request only when the authenticated user's role is
// in the permitted set. Must run after Authenticate.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				response.Error(w,http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				response.Error(w,http.StatusForbidden, "Forbidden: Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the authenticated user attached by Authenticate.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// ContextWithUser is used by tests to simulate an authenticated request.
func ContextWithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}
