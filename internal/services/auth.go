package services

import (
	"context"
	"fmt"
	"time"

	"github.com/contacthub/contacthub-backend/internal/models"
	"github.com/contacthub/contacthub-backend/pkg/utils"
)

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = time.Hour

// AuthService covers signup, signin and the password-reset flow.
type AuthService struct {
	users       *UserStore
	mailer      *Mailer
	jwtSecret   string
	frontendURL string
}

func NewAuthService(users *UserStore, mailer *Mailer, jwtSecret, frontendURL string) *AuthService {
	return &AuthService{
		users:       users,
		mailer:      mailer,
		jwtSecret:   jwtSecret,
		frontendURL: frontendURL,
	}
}

// Signup creates the account. New signups always start as unapproved
// "user"-role accounts regardless of payload; an admin approves later.
func (a *AuthService) Signup(ctx context.Context, u *models.User, password string) (*models.User, error) {
	u.Role = models.RoleUser
	u.IsApproved = false
	u.IsActive = true
	u.IsDeleted = false

	if err := a.users.Create(ctx, u, password); err != nil {
		return nil, err
	}

	u.Password = ""
	return u, nil
}

// Signin compares the submitted password against the stored hash for a user
// the validation middleware already loaded, then issues the access token.
func (a *AuthService) Signin(ctx context.Context, u *models.User, password string) (string, error) {
	ok, err := utils.VerifyPassword(password, u.Password)
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}
	return utils.SignToken(a.jwtSecret, u.ID.Hex(), u.Email, utils.AccessTokenTTL)
}

// ForgotPassword generates a reset token, persists it with a one-hour
// expiry and mails the reset link.
func (a *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}
	if err := a.users.SetResetToken(ctx, u.ID, token, time.Now().Add(ResetTokenTTL)); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", a.frontendURL, token)
	if err := a.mailer.SendPasswordReset(u.Email, resetURL); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// ResetPassword exchanges an unexpired reset token for a new password. The
// token and expiry are cleared by the store in the same update.
func (a *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := a.users.FindByResetToken(ctx, token)
	if err != nil {
		return err
	}
	return a.users.UpdatePassword(ctx, u.ID, newPassword)
}
