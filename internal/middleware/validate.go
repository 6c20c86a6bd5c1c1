package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"net/url"

	"github.com/contacthub/contacthub-backend/internal/models"
	"github.com/contacthub/contacthub-backend/internal/response"
	"github.com/contacthub/contacthub-backend/internal/services"
)

// SignupRequest is the typed signup payload.
type SignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	ContactNumber   string `json:"contactNumber"`
	ProfilePhoto    string `json:"profilePhoto,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate returns every field violation, not just the first.
func (r *SignupRequest) Validate() []response.FieldError {
	var errs []response.FieldError
	if len(r.FirstName) < 2 {
		errs = append(errs, response.FieldError{Field: "firstName", Message: "First name must be at least 2 characters"})
	}
	if len(r.LastName) < 2 {
		errs = append(errs, response.FieldError{Field: "lastName", Message: "Last name must be at least 2 characters"})
	}
	if len(r.ContactNumber) < 10 {
		errs = append(errs, response.FieldError{Field: "contactNumber", Message: "Contact number must be at least 10 digits"})
	}
	if !validEmail(r.Email) {
		errs = append(errs, response.FieldError{Field: "email", Message: "Invalid email format"})
	}
	if r.ProfilePhoto != "" && !validURL(r.ProfilePhoto) {
		errs = append(errs, response.FieldError{Field: "profilePhoto", Message: "Invalid profile photo URL"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, response.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if len(r.ConfirmPassword) < 6 {
		errs = append(errs, response.FieldError{Field: "confirmPassword", Message: "Password must be at least 6 characters"})
	} else if r.Password != r.ConfirmPassword {
		errs = append(errs, response.FieldError{Field: "confirmPassword", Message: "Passwords do not match"})
	}
	return errs
}

// SigninRequest is the typed signin payload.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SigninRequest) Validate() []response.FieldError {
	var errs []response.FieldError
	if !validEmail(r.Email) {
		errs = append(errs, response.FieldError{Field: "email", Message: "Invalid email format"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, response.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}

// ValidateSignup parses and validates the signup body, rejects already
// registered emails and attaches the payload to the context for the handler.
func ValidateSignup(users *services.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req SignupRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				response.Error(w,http.StatusBadRequest, "Invalid request body")
				return
			}
			if errs := req.Validate(); len(errs) > 0 {
				response.FieldErrors(w, errs)
				return
			}

			_, err := users.FindByEmail(r.Context(), req.Email)
			switch {
			case err == nil:
				response.Error(w,http.StatusBadRequest, "Email already registered")
				return
			case !errors.Is(err, services.ErrUserNotFound):
				response.Error(w,http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), signupKey, &req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateSignin parses the credentials, loads the account, rejects
// deactivated / deleted / unapproved accounts and attaches both payload and
// loaded user so the handler avoids a second lookup.
func ValidateSignin(users *services.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req SigninRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				response.Error(w,http.StatusBadRequest, "Invalid request body")
				return
			}
			if errs := req.Validate(); len(errs) > 0 {
				response.FieldErrors(w, errs)
				return
			}

			user, err := users.FindByEmail(r.Context(), req.Email)
			if err != nil {
				if errors.Is(err, services.ErrUserNotFound) {
					response.Error(w,http.StatusBadRequest, "User not found!")
					return
				}
				response.Error(w,http.StatusInternalServerError, "Internal server error")
				return
			}

			if reason := user.CanSignIn(); reason != "" {
				response.Error(w,http.StatusForbidden, reason)
				return
			}

			ctx := context.WithValue(r.Context(), signinKey, &signinPayload{req: &req, user: user})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type signinPayload struct {
	req  *SigninRequest
	user *models.User
}

// SignupFromContext returns the validated signup payload.
func SignupFromContext(ctx context.Context) (*SignupRequest, bool) {
	req, ok := ctx.Value(signupKey).(*SignupRequest)
	return req, ok
}

// SigninFromContext returns the validated credentials and the pre-loaded
// user attached by ValidateSignin.
func SigninFromContext(ctx context.Context) (*SigninRequest, *models.User, bool) {
	p, ok := ctx.Value(signinKey).(*signinPayload)
	if !ok {
		return nil, nil, false
	}
	return p.req, p.user, true
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
