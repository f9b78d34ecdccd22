package repository

import (
	"context"

	"paxala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *ContactRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("name").Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Contact, error) {
	var contacts []model.Contact
	if len(ids) == 0 {
		return contacts, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&contacts).Error
	return contacts, err
}
