package repository

import (
	"context"
	"errors"

	"paxala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *model.ContactInquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *InquiryRepository) List(ctx context.Context, filter InquiryFilter) ([]model.ContactInquiry, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	var inquiries []model.ContactInquiry
	err := r.db.WithContext(ctx).
		Scopes(filter.scope).
		Order("created_at DESC").
		Find(&inquiries).Error
	return inquiries, err
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InquiryStatus) (*model.ContactInquiry, error) {
	var inquiry model.ContactInquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInquiryNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&inquiry).Update("status", status).Error; err != nil {
		return nil, err
	}
	inquiry.Status = status
	return &inquiry, nil
}
