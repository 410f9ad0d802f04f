package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/utils"
)

// PostService owns post CRUD. Mutations are ownership-scoped: a post can
// only be changed or deleted by its author, and a missing post is
// indistinguishable from someone else's post.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// PostInput carries the author-supplied fields of a new post.
type PostInput struct {
	Title         string
	Content       string
	Excerpt       string
	CoverImageURL string
}

// PostUpdate carries the optional fields of a partial update. Nil means
// "leave as is". The slug is never part of an update.
type PostUpdate struct {
	Title         *string
	Content       *string
	Excerpt       *string
	CoverImageURL *string
	Published     *bool
}

// Empty reports whether no field was supplied.
func (u PostUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Excerpt == nil && u.CoverImageURL == nil && u.Published == nil
}

// Create persists a new unpublished post for the author. Author-supplied
// text is sanitized first; the slug is derived from the sanitized title
// once, here. Persistence failures (slug collision included) surface as
// ErrBadRequest rather than raw driver errors.
func (s *PostService) Create(input PostInput, author *models.User) (*models.Post, error) {
	title := strings.TrimSpace(utils.Sanitize(input.Title))
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrBadRequest)
	}

	post := models.Post{
		Slug:          utils.Slugify(title),
		Title:         title,
		Content:       utils.Sanitize(input.Content),
		Excerpt:       utils.Sanitize(input.Excerpt),
		CoverImageURL: input.CoverImageURL,
		AuthorID:      author.ID,
	}

	if err := s.db.Create(&post).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("failed to create post slug=%s author=%s: %v", post.Slug, author.ID, err)
		}
		return nil, fmt.Errorf("%w: could not create post", ErrBadRequest)
	}
	post.Author = *author
	return &post, nil
}

// ListPublished returns all published posts, newest first.
func (s *PostService) ListPublished() ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Where("published = ?", true).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

// GetPublishedBySlug returns a published post by slug or ErrNotFound.
// Unpublished posts are invisible here regardless of caller.
func (s *PostService) GetPublishedBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.Where("slug = ? AND published = ?", slug, true).
		Preload("Author").
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return &post, nil
}

// ListOwned returns every post of the author, drafts included, newest first.
func (s *PostService) ListOwned(author *models.User) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Where("author_id = ?", author.ID).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list owned posts: %w", err)
	}
	return posts, nil
}

// GetOwned returns the author's post by id. A post owned by another user
// yields the same ErrNotFound as a nonexistent one.
func (s *PostService) GetOwned(id string, author *models.User) (*models.Post, error) {
	var post models.Post
	err := s.db.Where("id = ? AND author_id = ?", id, author.ID).
		Preload("Author").
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return &post, nil
}

// UpdateOwned applies a partial update to the author's post. Absent fields
// keep their prior value; the slug stays as derived at creation.
func (s *PostService) UpdateOwned(id string, update PostUpdate, author *models.User) (*models.Post, error) {
	if update.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrBadRequest)
	}

	post, err := s.GetOwned(id, author)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(utils.Sanitize(*update.Title))
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrBadRequest)
		}
		post.Title = title
	}
	if update.Content != nil {
		post.Content = utils.Sanitize(*update.Content)
	}
	if update.Excerpt != nil {
		post.Excerpt = utils.Sanitize(*update.Excerpt)
	}
	if update.CoverImageURL != nil {
		post.CoverImageURL = *update.CoverImageURL
	}
	if update.Published != nil {
		post.Published = *update.Published
	}

	if err := s.db.Save(post).Error; err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return post, nil
}

// DeleteOwned removes the author's post and returns the pre-deletion snapshot.
func (s *PostService) DeleteOwned(id string, author *models.User) (*models.Post, error) {
	post, err := s.GetOwned(id, author)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("id = ? AND author_id = ?", id, author.ID).Delete(&models.Post{}).Error; err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	return post, nil
}
