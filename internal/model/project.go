package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "PLANNING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(16);not null" json:"status"`
	ClientID    *uuid.UUID    `gorm:"type:uuid;index" json:"clientId,omitempty"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	Client   *User     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Staff    []User    `gorm:"many2many:project_staff" json:"staff,omitempty"`
	Contacts []Contact `gorm:"many2many:project_contacts" json:"contacts,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectPlanning
	}
	return nil
}

// Membership is the slice of a project the access guard needs.
type Membership struct {
	ProjectID  uuid.UUID
	ClientID   *uuid.UUID
	StaffIDs   []uuid.UUID
	ContactIDs []uuid.UUID // users linked through the client's contact list
}

func (m Membership) IsOwner(userID uuid.UUID) bool {
	return m.ClientID != nil && *m.ClientID == userID
}

func (m Membership) HasStaff(userID uuid.UUID) bool {
	for _, id := range m.StaffIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (m Membership) HasContact(userID uuid.UUID) bool {
	for _, id := range m.ContactIDs {
		if id == userID {
			return true
		}
	}
	return false
}
