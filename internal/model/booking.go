package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// HoldsSlot reports whether a booking in this status occupies its date and time slot.
func (s BookingStatus) HoldsSlot() bool {
	return s == BookingPending || s == BookingConfirmed
}

// ActiveBookingStatuses are the statuses that hold a slot.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

// Booking is a studio session request from the public site. Date is a
// calendar day (YYYY-MM-DD) and TimeSlot a local start time (HH:MM).
type Booking struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string        `gorm:"not null" json:"name"`
	Email     string        `gorm:"not null" json:"email"`
	Phone     string        `json:"phone"`
	Service   string        `gorm:"not null" json:"service"`
	Date      string        `gorm:"type:varchar(10);not null;index:idx_bookings_slot" json:"date"`
	TimeSlot  string        `gorm:"type:varchar(5);not null;index:idx_bookings_slot" json:"timeSlot"`
	Status    BookingStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Notes     string        `gorm:"type:text" json:"notes"`
	Locale    string        `gorm:"type:varchar(2)" json:"locale"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}
