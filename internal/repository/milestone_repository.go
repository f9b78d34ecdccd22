package repository

import (
	"context"
	"errors"

	"paxala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

// Append inserts the milestone after the project's last one: order is
// MAX(position)+1, or 0 for the first milestone.
func (r *MilestoneRepository) Append(ctx context.Context, milestone *model.Milestone) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition struct {
			Max *int
		}
		err := tx.Model(&model.Milestone{}).
			Select("MAX(position) as max").
			Where("project_id = ?", milestone.ProjectID).
			Scan(&maxPosition).Error
		if err != nil {
			return err
		}

		milestone.Order = 0
		if maxPosition.Max != nil {
			milestone.Order = *maxPosition.Max + 1
		}
		return tx.Omit("Tasks").Create(milestone).Error
	})
}

func (r *MilestoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Milestone, error) {
	var milestone model.Milestone
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&milestone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMilestoneNotFound
	}
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// ListByProject returns the project's milestones by order with their
// tasks. visibleOnly hides milestones and tasks not shown to clients.
func (r *MilestoneRepository) ListByProject(ctx context.Context, projectID uuid.UUID, visibleOnly bool) ([]model.Milestone, error) {
	var milestones []model.Milestone
	q := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			if visibleOnly {
				db = db.Where("is_visible = ?", true)
			}
			return db.Order("created_at")
		}).
		Where("project_id = ?", projectID)
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	err := q.Order("position").Find(&milestones).Error
	return milestones, err
}

func (r *MilestoneRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Milestone{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// Update applies a column map to one milestone.
func (r *MilestoneRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Milestone{}).Where("id = ?", id).Updates(fields).Error
}

// Reorder assigns each milestone its index in orderedIDs. The ids must be
// exactly the project's milestones; otherwise nothing is written and
// ErrMilestoneSetMismatch is returned.
func (r *MilestoneRepository) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []uuid.UUID
		if err := tx.Model(&model.Milestone{}).Where("project_id = ?", projectID).Pluck("id", &current).Error; err != nil {
			return err
		}
		if !sameIDSet(current, orderedIDs) {
			return ErrMilestoneSetMismatch
		}

		for position, id := range orderedIDs {
			if err := tx.Model(&model.Milestone{}).
				Where("id = ? AND project_id = ?", id, projectID).
				Update("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the milestone and its tasks.
func (r *MilestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("milestone_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Milestone{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMilestoneNotFound
		}
		return nil
	})
}

func sameIDSet(current, given []uuid.UUID) bool {
	if len(current) != len(given) {
		return false
	}
	seen := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		seen[id] = false
	}
	for _, id := range given {
		used, ok := seen[id]
		if !ok || used {
			return false
		}
		seen[id] = true
	}
	return true
}
