package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillhq/quill/services"
	"github.com/quillhq/quill/utils"
)

// respondServiceError maps a service error kind onto an HTTP status and
// the uniform JSON envelope. Anything unrecognized is a 500 and gets
// logged; the raw error never reaches the client.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40900, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(ctx, http.StatusUnauthorized, 40110, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.Error(ctx, http.StatusUnauthorized, 40111, err.Error())
	case errors.Is(err, services.ErrBadRequest):
		utils.Error(ctx, http.StatusBadRequest, 40000, err.Error())
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("internal error on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}

// respondValidationError reports field-level validation failures.
func respondValidationError(ctx *gin.Context, fields map[string]string) {
	utils.Respond(ctx, http.StatusBadRequest, 40001, "validation failed", gin.H{"fields": fields})
}
