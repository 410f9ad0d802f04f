package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/utils"
)

// UserService owns account lifecycle: registration, profile updates,
// password changes and deletion. Callers construct it once at boot with
// its database handle.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileUpdate carries the optional fields of a profile change. Nil means
// "leave as is".
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// FindByID loads a user or reports ErrNotFound.
func (s *UserService) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// FindByEmail loads a user by email. A missing row comes back as
// gorm.ErrRecordNotFound for the auth flow to translate.
func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account, newest first. Sensitive fields stay out
// of responses through the model's JSON tags.
func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// emailTaken reports whether another user already holds the email.
func (s *UserService) emailTaken(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

// Register creates an account with a freshly hashed password.
// A duplicate email yields ErrConflict.
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	taken, err := s.emailTaken(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The unique index can still fire under a racing registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies an optional name and/or email change. An email
// change marks every outstanding token stale via ForceLogout.
func (s *UserService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	if update.Name == nil && update.Email == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrBadRequest)
	}

	user, err := s.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}

	if update.Email != nil && *update.Email != user.Email {
		taken, err := s.emailTaken(*update.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		user.Email = *update.Email
		user.ForceLogout = true
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the stored hash after verifying the current
// password. The new password must differ from the current one. On success
// ForceLogout is set so older tokens die.
func (s *UserService) ChangePassword(userID, currentPassword, newPassword string) (*models.User, error) {
	user, err := s.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, currentPassword) {
		return nil, fmt.Errorf("%w: current password incorrect", ErrUnauthorized)
	}

	if newPassword == currentPassword {
		return nil, fmt.Errorf("%w: new password must differ from the current one", ErrBadRequest)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	user.ForceLogout = true
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// DeleteAccount removes the user and returns the pre-deletion snapshot.
// Owned posts go with the account via the schema-level cascade.
func (s *UserService) DeleteAccount(userID string) (*models.User, error) {
	user, err := s.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("id = ?", userID).Delete(&models.User{}).Error; err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	// Cascade is also enforced at the schema level; this keeps the
	// behavior identical on drivers that skipped the FK constraint.
	if err := s.db.Where("author_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
		return nil, fmt.Errorf("delete user posts: %w", err)
	}
	return user, nil
}
