package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserJSONHidesCredentials(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	u := User{
		FirstName:            "Alice",
		Email:                "alice@example.com",
		Password:             "$argon2id$v=19$m=65536,t=3,p=2$salt$hash",
		ResetPasswordToken:   "deadbeef",
		ResetPasswordExpires: &expires,
	}

	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	out := string(raw)
	for _, secret := range []string{"argon2id", "deadbeef", "password", "reset"} {
		if strings.Contains(strings.ToLower(out), secret) {
			t.Errorf("serialized user leaks %q: %s", secret, out)
		}
	}
	if !strings.Contains(out, `"email":"alice@example.com"`) {
		t.Errorf("serialized user missing email: %s", out)
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleAdmin, RoleSuperAdmin} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false", role)
		}
	}
	for _, role := range []string{"", "root", "User", "superadmin"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true", role)
		}
	}
}

func TestCanSignIn(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"good standing", User{IsActive: true, IsApproved: true}, ""},
		{"deactivated", User{IsActive: false, IsApproved: true}, "Your account has been deactivated. Contact support."},
		{"deleted", User{IsActive: true, IsApproved: true, IsDeleted: true}, "Your account has been deleted."},
		{"unapproved", User{IsActive: true, IsApproved: false}, "Your account is not approved yet."},
		{"deactivated wins over deleted", User{IsActive: false, IsDeleted: true}, "Your account has been deactivated. Contact support."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CanSignIn(); got != tt.want {
				t.Errorf("CanSignIn() = %q, want %q", got, tt.want)
			}
		})
	}
}
