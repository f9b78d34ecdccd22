package repository

import (
	"context"
	"errors"

	"paxala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDs returns the users found among ids, in no particular order.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// List returns users ordered by name, optionally restricted to one role.
func (r *UserRepository) List(ctx context.Context, role *model.Role) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx).Order("name")
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	err := q.Find(&users).Error
	return users, err
}

// UpdateRole changes the user's role. Moving a user out of the team also
// unassigns their tasks, removes them from project staff and detaches their
// reports, all in one transaction.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !role.IsTeam() {
			if err := tx.Model(&model.Task{}).Where("assignee_id = ?", id).Update("assignee_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM project_staff WHERE user_id = ?", id).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.User{}).Where("manager_id = ?", id).Update("manager_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.User{}).Where("id = ?", id).Update("role", role).Error
	})
}

// UpdateManager sets or clears (nil) the user's manager.
func (r *UserRepository) UpdateManager(ctx context.Context, id uuid.UUID, managerID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("manager_id", managerID).Error
}
