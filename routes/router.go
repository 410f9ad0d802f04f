package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/controllers"
	"github.com/quillhq/quill/middleware"
	"github.com/quillhq/quill/services"
	"github.com/quillhq/quill/utils"
)

// SetupRouter is the single composition point: it constructs services and
// controllers with their collaborators and wires routes and middlewares.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	userService := services.NewUserService(db)
	authService := services.NewAuthService(db, userService, time.Duration(cfg.TokenTTLHours)*time.Hour)
	postService := services.NewPostService(db)

	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	postController := controllers.NewPostController(postService)

	api := r.Group("/api/v1")

	api.POST("/auth/login", authController.Login)
	api.POST("/users", userController.Register)
	api.GET("/users", userController.List)

	// Public published posts
	api.GET("/posts", postController.ListPublished)
	api.GET("/posts/:slug", postController.GetPublishedBySlug)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(db))

	protected.GET("/users/me", userController.Me)
	protected.PATCH("/users/me", userController.UpdateProfile)
	protected.PATCH("/users/me/password", userController.ChangePassword)
	protected.DELETE("/users/me", userController.DeleteAccount)

	protected.POST("/posts/me", postController.Create)
	protected.GET("/posts/me", postController.ListOwned)
	protected.GET("/posts/me/:id", postController.GetOwned)
	protected.PATCH("/posts/me/:id", postController.UpdateOwned)
	protected.DELETE("/posts/me/:id", postController.DeleteOwned)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40404, "route not found")
	})

	return r
}
