package middleware

import (
	"testing"

	"github.com/contacthub/contacthub-backend/internal/response"
)

func fieldSet(errs []response.FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}

func TestSignupRequestValidateOK(t *testing.T) {
	req := SignupRequest{
		FirstName:       "Alice",
		LastName:        "Smith",
		Email:           "alice@example.com",
		ContactNumber:   "5550001234",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	if errs := req.Validate(); len(errs) != 0 {
		t.Errorf("valid payload produced errors: %v", errs)
	}
}

func TestSignupRequestValidateCollectsAll(t *testing.T) {
	req := SignupRequest{
		FirstName:       "A",
		LastName:        "B",
		Email:           "not-an-email",
		ContactNumber:   "123",
		ProfilePhoto:    "ftp://example.com/x.png",
		Password:        "123",
		ConfirmPassword: "456",
	}
	errs := fieldSet(req.Validate())

	for _, field := range []string{"firstName", "lastName", "email", "contactNumber", "profilePhoto", "password", "confirmPassword"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing violation for %q, got %v", field, errs)
		}
	}
}

func TestSignupRequestPasswordMismatch(t *testing.T) {
	req := SignupRequest{
		FirstName:       "Alice",
		LastName:        "Smith",
		Email:           "alice@example.com",
		ContactNumber:   "5550001234",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	}
	errs := fieldSet(req.Validate())
	if len(errs) != 1 {
		t.Fatalf("want exactly one violation, got %v", errs)
	}
	if errs["confirmPassword"] != "Passwords do not match" {
		t.Errorf("confirmPassword message = %q", errs["confirmPassword"])
	}
}

func TestSignupRequestOptionalProfilePhoto(t *testing.T) {
	req := SignupRequest{
		FirstName:       "Alice",
		LastName:        "Smith",
		Email:           "alice@example.com",
		ContactNumber:   "5550001234",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	if errs := req.Validate(); len(errs) != 0 {
		t.Errorf("empty profilePhoto should be valid, got %v", errs)
	}
	req.ProfilePhoto = "https://cdn.example.com/me.png"
	if errs := req.Validate(); len(errs) != 0 {
		t.Errorf("https profilePhoto should be valid, got %v", errs)
	}
}

func TestSigninRequestValidate(t *testing.T) {
	ok := SigninRequest{Email: "alice@example.com", Password: "secret1"}
	if errs := ok.Validate(); len(errs) != 0 {
		t.Errorf("valid payload produced errors: %v", errs)
	}

	bad := SigninRequest{Email: "nope", Password: "123"}
	errs := fieldSet(bad.Validate())
	if _, found := errs["email"]; !found {
		t.Errorf("missing email violation, got %v", errs)
	}
	if _, found := errs["password"]; !found {
		t.Errorf("missing password violation, got %v", errs)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com"}
	invalid := []string{"", "plain", "@example.com", "Alice <alice@example.com>"}

	for _, s := range valid {
		if !validEmail(s) {
			t.Errorf("validEmail(%q) = false", s)
		}
	}
	for _, s := range invalid {
		if validEmail(s) {
			t.Errorf("validEmail(%q) = true", s)
		}
	}
}
