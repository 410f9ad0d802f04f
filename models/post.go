package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a blog post owned by a single user. The slug is derived
// from the title once at creation and never recomputed.
type Post struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	Slug          string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Excerpt       string    `gorm:"size:512" json:"excerpt"`
	CoverImageURL string    `gorm:"size:512" json:"cover_image_url"`
	Published     bool      `gorm:"not null;default:false" json:"published"`
	AuthorID      string    `gorm:"type:char(36);index;not null" json:"author_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Author        User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

// BeforeCreate assigns the identifier and ensures timestamps are set.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}
