package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillhq/quill/middleware"
	"github.com/quillhq/quill/services"
	"github.com/quillhq/quill/utils"
)

// UserController handles account registration and self-service management.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a UserController.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Register creates a new account.
func (u *UserController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid request payload")
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		respondValidationError(ctx, fields)
		return
	}

	user, err := u.users.Register(req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"user": user})
}

// List returns all registered users. Public; password hashes and session
// flags never serialize.
func (u *UserController) List(ctx *gin.Context) {
	users, err := u.users.ListUsers()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"users": users})
}

// Me returns the authenticated user's profile.
func (u *UserController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// UpdateProfile applies a partial name/email change for the caller.
func (u *UserController) UpdateProfile(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	var req updateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		respondValidationError(ctx, fields)
		return
	}

	updated, err := u.users.UpdateProfile(user.ID, services.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	// Cached public post payloads embed the preloaded author
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, gin.H{"user": updated})
}

// ChangePassword replaces the caller's password after checking the current one.
func (u *UserController) ChangePassword(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	var req changePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40005, "invalid request payload")
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		respondValidationError(ctx, fields)
		return
	}

	updated, err := u.users.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"user": updated})
}

// DeleteAccount removes the caller's account and returns the final snapshot.
func (u *UserController) DeleteAccount(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	deleted, err := u.users.DeleteAccount(user.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	// Deletion cascades to the user's posts, so cached listings are stale
	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, gin.H{"user": deleted})
}
