package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string     `gorm:"not null" json:"-"`
	Name           string     `gorm:"not null" json:"name"`
	Role           Role       `gorm:"type:varchar(16);not null;index" json:"role"`
	ManagerID      *uuid.UUID `gorm:"type:uuid;index" json:"managerId,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleClient
	}
	return nil
}
