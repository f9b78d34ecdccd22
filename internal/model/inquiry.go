package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquiryStatus string

const (
	InquiryNew      InquiryStatus = "NEW"
	InquiryRead     InquiryStatus = "READ"
	InquiryArchived InquiryStatus = "ARCHIVED"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryRead, InquiryArchived:
		return true
	}
	return false
}

// ContactInquiry is a message sent through the public contact form.
type ContactInquiry struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string        `gorm:"not null" json:"name"`
	Email     string        `gorm:"not null" json:"email"`
	Phone     string        `json:"phone"`
	Company   string        `json:"company"`
	Subject   string        `json:"subject"`
	Message   string        `gorm:"type:text;not null" json:"message"`
	Status    InquiryStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Locale    string        `gorm:"type:varchar(2)" json:"locale"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (c *ContactInquiry) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = InquiryNew
	}
	return nil
}
