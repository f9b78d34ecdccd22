package repository

import (
	"context"
	"errors"

	"paxala/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func slotHeld(tx *gorm.DB, date, timeSlot string, exclude uuid.UUID) (bool, error) {
	var count int64
	q := tx.Model(&model.Booking{}).
		Where("date = ? AND time_slot = ? AND status IN ?", date, timeSlot, model.ActiveBookingStatuses)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores the booking unless its slot is already held by a pending
// or confirmed booking, in which case ErrSlotTaken is returned.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if booking.Status == "" {
			booking.Status = model.BookingPending
		}
		if booking.Status.HoldsSlot() {
			held, err := slotHeld(tx, booking.Date, booking.TimeSlot, uuid.Nil)
			if err != nil {
				return err
			}
			if held {
				return ErrSlotTaken
			}
		}
		return tx.Create(booking).Error
	})
	// The partial unique index catches a concurrent insert that passed the check.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return err
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context, filter BookingFilter) ([]model.Booking, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Scopes(filter.scope).
		Order("date, time_slot, created_at").
		Find(&bookings).Error
	return bookings, err
}

// UpdateStatus changes the booking's status. Moving a booking back into a
// slot-holding status fails with ErrSlotTaken if another booking holds it.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if status.HoldsSlot() && !booking.Status.HoldsSlot() {
			held, err := slotHeld(tx, booking.Date, booking.TimeSlot, booking.ID)
			if err != nil {
				return err
			}
			if held {
				return ErrSlotTaken
			}
		}
		booking.Status = status
		return tx.Model(&booking).Update("status", status).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// TakenSlots lists the time slots held on a date.
func (r *BookingRepository) TakenSlots(ctx context.Context, date string) ([]string, error) {
	var slots []string
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("date = ? AND status IN ?", date, model.ActiveBookingStatuses).
		Order("time_slot").
		Pluck("time_slot", &slots).Error
	return slots, err
}
