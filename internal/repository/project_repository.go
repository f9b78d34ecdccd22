package repository

import (
	"context"
	"errors"

	"paxala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit("Client", "Staff", "Contacts").Create(project).Error
}

// GetByID loads the project with its client, staff and contacts.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Preload("Contacts").
		Where("id = ?", id).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListAll returns every project, newest first.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).Preload("Client").Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// ListForStaff returns the projects the user is assigned to.
func (r *ProjectRepository) ListForStaff(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	assigned := r.db.Table("project_staff").Select("project_id").Where("user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id IN (?)", assigned).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ListForClient returns the projects the user owns or is a contact on.
func (r *ProjectRepository) ListForClient(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	viaContact := r.db.Table("project_contacts").
		Select("project_contacts.project_id").
		Joins("JOIN contacts ON contacts.id = project_contacts.contact_id").
		Where("contacts.user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("client_id = ? OR id IN (?)", userID, viaContact).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// Membership collects the user ids the access guard checks against.
func (r *ProjectRepository) Membership(ctx context.Context, projectID uuid.UUID) (*model.Membership, error) {
	db := r.db.WithContext(ctx)

	var project model.Project
	err := db.Select("id", "client_id").Where("id = ?", projectID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	m := &model.Membership{ProjectID: project.ID, ClientID: project.ClientID}
	if err := db.Table("project_staff").Where("project_id = ?", projectID).Pluck("user_id", &m.StaffIDs).Error; err != nil {
		return nil, err
	}
	err = db.Table("project_contacts").
		Joins("JOIN contacts ON contacts.id = project_contacts.contact_id").
		Where("project_contacts.project_id = ? AND contacts.user_id IS NOT NULL", projectID).
		Pluck("contacts.user_id", &m.ContactIDs).Error
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Update applies a column map to the project. When client_id is among the
// fields, contacts belonging to any other client are unlinked in the same
// transaction.
func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Project{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		clientID, ok := fields["client_id"]
		if !ok {
			return nil
		}

		q := tx.Table("project_contacts").
			Joins("JOIN contacts ON contacts.id = project_contacts.contact_id").
			Where("project_contacts.project_id = ?", id)
		if c, _ := clientID.(*uuid.UUID); c != nil {
			q = q.Where("contacts.client_id <> ?", *c)
		}
		var stale []uuid.UUID
		if err := q.Pluck("project_contacts.contact_id", &stale).Error; err != nil {
			return err
		}
		if len(stale) == 0 {
			return nil
		}
		return tx.Exec("DELETE FROM project_contacts WHERE project_id = ? AND contact_id IN ?", id, stale).Error
	})
}

// Delete removes the project with its milestones, tasks, comments and
// membership rows.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		milestones := tx.Model(&model.Milestone{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("milestone_id IN (?)", milestones).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Milestone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_staff WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_contacts WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}

// ReplaceStaff sets the project's staff to exactly userIDs.
func (r *ProjectRepository) ReplaceStaff(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_staff WHERE project_id = ?", projectID).Error; err != nil {
			return err
		}
		for _, userID := range userIDs {
			if err := tx.Exec(
				"INSERT INTO project_staff (project_id, user_id) VALUES (?, ?)",
				projectID, userID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceContacts sets the project's contacts to exactly contactIDs.
func (r *ProjectRepository) ReplaceContacts(ctx context.Context, projectID uuid.UUID, contactIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_contacts WHERE project_id = ?", projectID).Error; err != nil {
			return err
		}
		for _, contactID := range contactIDs {
			if err := tx.Exec(
				"INSERT INTO project_contacts (project_id, contact_id) VALUES (?, ?)",
				projectID, contactID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
