package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quillhq/quill/middleware"
	"github.com/quillhq/quill/services"
	"github.com/quillhq/quill/utils"
)

// PostController manages post CRUD: public published reads plus
// ownership-scoped writes for the authenticated author.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a PostController.
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// cacheWrapper mirrors the standard response envelope for cached payloads.
type cacheWrapper struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const postsCachePrefix = "cache:posts:"

// Create persists a new draft for the caller.
func (p *PostController) Create(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	var req createPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		respondValidationError(ctx, fields)
		return
	}

	post, err := p.posts.Create(services.PostInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CoverImageURL: req.CoverImageURL,
	}, user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"post": post})
}

// ListPublished returns all published posts, newest first. Public, cached.
func (p *PostController) ListPublished(ctx *gin.Context) {
	cacheKey := postsCachePrefix + "published"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.posts.ListPublished()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	payload := gin.H{"posts": posts}
	utils.CacheSetJSON(cacheKey, cacheWrapper{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// GetPublishedBySlug returns one published post by slug. Public, cached.
func (p *PostController) GetPublishedBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	cacheKey := postsCachePrefix + "slug:" + slug
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.posts.GetPublishedBySlug(slug)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	payload := gin.H{"post": post}
	utils.CacheSetJSON(cacheKey, cacheWrapper{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// ListOwned returns every post of the caller, drafts included.
func (p *PostController) ListOwned(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	posts, err := p.posts.ListOwned(user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"posts": posts})
}

// GetOwned returns one of the caller's posts by id.
func (p *PostController) GetOwned(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	post, err := p.posts.GetOwned(ctx.Param("id"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// UpdateOwned applies a partial update to one of the caller's posts.
func (p *PostController) UpdateOwned(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	var req updatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		respondValidationError(ctx, fields)
		return
	}

	post, err := p.posts.UpdateOwned(ctx.Param("id"), services.PostUpdate{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CoverImageURL: req.CoverImageURL,
		Published:     req.Published,
	}, user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, gin.H{"post": post})
}

// DeleteOwned removes one of the caller's posts.
func (p *PostController) DeleteOwned(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	post, err := p.posts.DeleteOwned(ctx.Param("id"), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(postsCachePrefix)
	utils.Success(ctx, gin.H{"post": post})
}
