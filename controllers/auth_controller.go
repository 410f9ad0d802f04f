package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillhq/quill/services"
	"github.com/quillhq/quill/utils"
)

// AuthController handles login.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login verifies credentials and issues a JWT. Unknown email and wrong
// password return the same response.
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		respondValidationError(ctx, fields)
		return
	}

	token, user, err := a.auth.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}
