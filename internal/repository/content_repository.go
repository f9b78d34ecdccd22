package repository

import (
	"context"
	"errors"

	"paxala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentRepository stores blog posts and portfolio items.
type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ListPosts(ctx context.Context, filter ContentFilter) ([]model.BlogPost, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	var posts []model.BlogPost
	err := r.db.WithContext(ctx).
		Scopes(filter.postScope).
		Order("published_at DESC, created_at DESC").
		Find(&posts).Error
	return posts, err
}

// GetPostBySlug finds a post; publishedOnly hides drafts.
func (r *ContentRepository) GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.BlogPost, error) {
	var post model.BlogPost
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	err := q.First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ContentRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ContentRepository) CreatePost(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// SavePost writes every column of an existing post.
func (r *ContentRepository) SavePost(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *ContentRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *ContentRepository) ListPortfolio(ctx context.Context, filter ContentFilter) ([]model.PortfolioItem, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	var items []model.PortfolioItem
	err := r.db.WithContext(ctx).
		Scopes(filter.portfolioScope).
		Order("position, created_at").
		Find(&items).Error
	return items, err
}

func (r *ContentRepository) GetPortfolioBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.PortfolioItem, error) {
	var item model.PortfolioItem
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	err := q.First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPortfolioNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContentRepository) GetPortfolioByID(ctx context.Context, id uuid.UUID) (*model.PortfolioItem, error) {
	var item model.PortfolioItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPortfolioNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContentRepository) CreatePortfolio(ctx context.Context, item *model.PortfolioItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ContentRepository) SavePortfolio(ctx context.Context, item *model.PortfolioItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *ContentRepository) DeletePortfolio(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.PortfolioItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}
