package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/utils"
)

// AuthService performs the login flow: credential verification, token
// issuance and the ForceLogout reset.
type AuthService struct {
	db       *gorm.DB
	users    *UserService
	tokenTTL time.Duration
}

// NewAuthService creates an AuthService.
func NewAuthService(db *gorm.DB, users *UserService, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, users: users, tokenTTL: tokenTTL}
}

// Login verifies the email/password pair and returns a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	// Clearing the flag revalidates this session. A failed save must not
	// withhold the already issued token; it only costs the user an extra
	// login later, so report it and move on.
	user.ForceLogout = false
	if err := s.db.Save(user).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("failed to clear force_logout for user %s: %v", user.ID, err)
		}
	}

	return token, user, nil
}
