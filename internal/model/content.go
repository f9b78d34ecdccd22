package model

import (
	"time"

	"paxala/internal/i18n"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPost struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title       i18n.Text  `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Excerpt     i18n.Text  `gorm:"embedded;embeddedPrefix:excerpt_" json:"excerpt"`
	Content     i18n.Text  `gorm:"embedded;embeddedPrefix:content_" json:"content"`
	CoverImage  string     `json:"coverImage"`
	Published   bool       `gorm:"not null;index" json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	AuthorID    *uuid.UUID `gorm:"type:uuid" json:"authorId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type PortfolioItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug         string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title        i18n.Text `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Description  i18n.Text `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Category     string    `gorm:"index" json:"category"`
	Client       string    `json:"client"`
	MediaURL     string    `json:"mediaUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Featured     bool      `gorm:"not null" json:"featured"`
	Order        int       `gorm:"column:position;not null" json:"order"`
	Published    bool      `gorm:"not null;index" json:"published"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p *PortfolioItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// All lists every persisted model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Contact{},
		&Project{},
		&Milestone{},
		&Task{},
		&Comment{},
		&Booking{},
		&ContactInquiry{},
		&BlogPost{},
		&PortfolioItem{},
	}
}
