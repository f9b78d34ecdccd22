package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a person on the client's side. A contact with a UserID can log
// in and view the projects it is attached to.
type Contact struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"clientId"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Position  string     `json:"position"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
