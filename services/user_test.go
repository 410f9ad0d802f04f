package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/utils"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	user := registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	if user.ID == "" {
		t.Error("registered user has no id")
	}
	if user.PasswordHash == "secret1" {
		t.Error("password stored in plain form")
	}
	if !utils.CheckPassword(user.PasswordHash, "secret1") {
		t.Error("stored hash does not verify against the password")
	}
	if user.ForceLogout {
		t.Error("new user should not start with ForceLogout set")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	if _, err := users.Register("Other Ana", "ana@x.com", "secret2"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate email: got %v, want ErrConflict", err)
	}
}

// A racing registration can slip past the pre-check and land on the unique
// index. Register maps that through gorm.ErrDuplicatedKey, which only exists
// when the connection translates driver errors.
func TestRegisterDuplicateKeyTranslates(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	dup := models.User{Name: "Racer", Email: "ana@x.com", PasswordHash: "irrelevant"}
	if err := db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestUpdateProfileEmptyPayload(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	user := registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	if _, err := users.UpdateProfile(user.ID, ProfileUpdate{}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("empty update: got %v, want ErrBadRequest", err)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	name := "Ghost"

	if _, err := users.UpdateProfile("no-such-id", ProfileUpdate{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: got %v, want ErrNotFound", err)
	}
}

func TestUpdateProfileNameOnly(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	user := registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	name := "Ana Maria"
	updated, err := users.UpdateProfile(user.ID, ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Ana Maria" {
		t.Errorf("name = %q, want %q", updated.Name, "Ana Maria")
	}
	if updated.ForceLogout {
		t.Error("name change must not set ForceLogout")
	}
	if updated.Email != "ana@x.com" {
		t.Errorf("email changed unexpectedly to %q", updated.Email)
	}
}

func TestUpdateProfileEmailSetsForceLogout(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	user := registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	email := "ana@y.com"
	updated, err := users.UpdateProfile(user.ID, ProfileUpdate{Email: &email})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Email != "ana@y.com" {
		t.Errorf("email = %q, want %q", updated.Email, "ana@y.com")
	}
	if !updated.ForceLogout {
		t.Error("email change must set ForceLogout")
	}
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	registerTestUser(t, users, "Ana", "ana@x.com", "secret1")
	bruno := registerTestUser(t, users, "Bruno", "bruno@x.com", "secret2")

	email := "ana@x.com"
	if _, err := users.UpdateProfile(bruno.ID, ProfileUpdate{Email: &email}); !errors.Is(err, ErrConflict) {
		t.Errorf("taken email: got %v, want ErrConflict", err)
	}
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	user := registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	updated, err := users.ChangePassword(user.ID, "secret1", "secret2")
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if !utils.CheckPassword(updated.PasswordHash, "secret2") {
		t.Error("new password does not verify")
	}
	if utils.CheckPassword(updated.PasswordHash, "secret1") {
		t.Error("old password still verifies")
	}
	if !updated.ForceLogout {
		t.Error("password change must set ForceLogout")
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	user := registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	if _, err := users.ChangePassword(user.ID, "wrong", "secret2"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("wrong current password: got %v, want ErrUnauthorized", err)
	}
}

func TestChangePasswordNoop(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	user := registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	// Rejected even though the current password is correct
	if _, err := users.ChangePassword(user.ID, "secret1", "secret1"); !errors.Is(err, ErrBadRequest) {
		t.Errorf("no-op password change: got %v, want ErrBadRequest", err)
	}
}

func TestChangePasswordUnknownUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	if _, err := users.ChangePassword("no-such-id", "secret1", "secret2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: got %v, want ErrNotFound", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db)
	user := registerTestUser(t, users, "Ana", "ana@x.com", "secret1")

	if _, err := posts.Create(PostInput{Title: "Draft", Content: "body"}, user); err != nil {
		t.Fatalf("Create post failed: %v", err)
	}

	snapshot, err := users.DeleteAccount(user.ID)
	if err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if snapshot.Email != "ana@x.com" {
		t.Errorf("snapshot email = %q, want %q", snapshot.Email, "ana@x.com")
	}

	if _, err := users.FindByID(user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted user still found: %v", err)
	}

	owned, err := posts.ListOwned(user)
	if err != nil {
		t.Fatalf("ListOwned failed: %v", err)
	}
	if len(owned) != 0 {
		t.Errorf("expected posts to be removed with the account, found %d", len(owned))
	}
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	if _, err := users.DeleteAccount("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: got %v, want ErrNotFound", err)
	}
}
