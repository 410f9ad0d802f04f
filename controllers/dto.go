package controllers

import (
	"regexp"
	"strings"
)

// DTO validation is explicit: each payload exposes Validate, returning
// field -> message for everything wrong with it. Handlers reject the
// request before any service sees the data.

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 6

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *registerRequest) Validate() map[string]string {
	errs := map[string]string{}
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		errs["name"] = "name cannot be empty"
	}
	if !emailPattern.MatchString(r.Email) {
		errs["email"] = "invalid email address"
	}
	if len(r.Password) < minPasswordLength {
		errs["password"] = "password must be at least 6 characters"
	}
	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) Validate() map[string]string {
	errs := map[string]string{}
	r.Email = strings.TrimSpace(r.Email)
	if !emailPattern.MatchString(r.Email) {
		errs["email"] = "invalid email address"
	}
	if r.Password == "" {
		errs["password"] = "password cannot be empty"
	}
	return errs
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (r *updateProfileRequest) Validate() map[string]string {
	errs := map[string]string{}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			errs["name"] = "name cannot be empty"
		}
		r.Name = &trimmed
	}
	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		if !emailPattern.MatchString(trimmed) {
			errs["email"] = "invalid email address"
		}
		r.Email = &trimmed
	}
	return errs
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *changePasswordRequest) Validate() map[string]string {
	errs := map[string]string{}
	if len(r.CurrentPassword) < minPasswordLength {
		errs["current_password"] = "current password must be at least 6 characters"
	}
	if len(r.NewPassword) < minPasswordLength {
		errs["new_password"] = "new password must be at least 6 characters"
	}
	return errs
}

type createPostRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	CoverImageURL string `json:"cover_image_url"`
}

func (r *createPostRequest) Validate() map[string]string {
	errs := map[string]string{}
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs["title"] = "title cannot be empty"
	}
	if strings.TrimSpace(r.Content) == "" {
		errs["content"] = "content cannot be empty"
	}
	return errs
}

type updatePostRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	CoverImageURL *string `json:"cover_image_url"`
	Published     *bool   `json:"published"`
}

func (r *updatePostRequest) Validate() map[string]string {
	errs := map[string]string{}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs["title"] = "title cannot be empty"
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		errs["content"] = "content cannot be empty"
	}
	return errs
}
