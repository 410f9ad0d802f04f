package services

import (
	"errors"
	"testing"
	"time"

	"github.com/quillhq/quill/utils"
)

func newAuthFixtures(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	db := newTestDB(t)
	users := NewUserService(db)
	auth := NewAuthService(db, users, time.Hour)
	return auth, users
}

func TestLogin(t *testing.T) {
	auth, users := newAuthFixtures(t)
	registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	token, user, err := auth.Login("ana@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatal("Login returned empty token")
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("token subject = %q, want user id %q", claims.Subject, user.ID)
	}
	if user.ForceLogout {
		t.Error("successful login must clear ForceLogout")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth, users := newAuthFixtures(t)
	registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	_, _, err := auth.Login("ana@x.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	auth, _ := newAuthFixtures(t)

	_, _, err := auth.Login("nobody@x.com", "secret1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLoginErrorsDoNotLeakExistence(t *testing.T) {
	auth, users := newAuthFixtures(t)
	registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	_, _, errWrongPassword := auth.Login("ana@x.com", "wrong")
	_, _, errUnknownEmail := auth.Login("nobody@x.com", "wrong")

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) || !errors.Is(errUnknownEmail, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", errWrongPassword, errUnknownEmail)
	}
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Errorf("error messages differ: %q vs %q", errWrongPassword, errUnknownEmail)
	}
}

func TestLoginClearsForceLogout(t *testing.T) {
	auth, users := newAuthFixtures(t)
	user := registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	if _, err := users.ChangePassword(user.ID, "secret1", "secret2"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	flagged, err := users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !flagged.ForceLogout {
		t.Fatal("ForceLogout not set after password change")
	}

	if _, _, err := auth.Login("ana@x.com", "secret2"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	cleared, err := users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if cleared.ForceLogout {
		t.Error("ForceLogout not cleared by successful login")
	}
}
