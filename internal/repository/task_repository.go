package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paxala/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit("Assignee").Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// List retrieves the tasks matching the filter, oldest first
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Preload("Assignee").
		Scopes(filter.scope).
		Order("created_at").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Update applies a column map to one task
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// AssignUser sets the task's assignee; nil clears it
func (r *TaskRepository) AssignUser(ctx context.Context, taskID uuid.UUID, userID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("assignee_id", userID).Error
}
