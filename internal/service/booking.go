package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"paxala/internal/apperr"
	"paxala/internal/i18n"
	"paxala/internal/metrics"
	"paxala/internal/model"
	"paxala/internal/notify"
	"paxala/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// StudioSlots are the session start times offered on every day.
var StudioSlots = []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

func isStudioSlot(s string) bool {
	for _, slot := range StudioSlots {
		if slot == s {
			return true
		}
	}
	return false
}

type BookingService struct {
	bookings *repository.BookingRepository
	mailer   notify.Mailer
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(bookings *repository.BookingRepository, mailer notify.Mailer, log *zap.Logger) *BookingService {
	return &BookingService{bookings: bookings, mailer: mailer, log: log, now: time.Now}
}

type CreateBookingInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Service  string `json:"service"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Notes    string `json:"notes"`
}

func (in CreateBookingInput) validate(today time.Time) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Validation("name is required")
	}
	if !validEmail(strings.TrimSpace(in.Email)) {
		return apperr.Validation("email is invalid")
	}
	if strings.TrimSpace(in.Service) == "" {
		return apperr.Validation("service is required")
	}
	day, err := time.ParseInLocation(dateLayout, in.Date, today.Location())
	if err != nil {
		return apperr.Validation("date must be YYYY-MM-DD")
	}
	if day.Before(today) {
		return apperr.Validation("date must not be in the past")
	}
	if !isStudioSlot(in.TimeSlot) {
		return apperr.Validation("timeSlot must be one of %s", strings.Join(StudioSlots, ", "))
	}
	return nil
}

// Create books a studio session. A slot already held by a pending or
// confirmed booking yields a Conflict and leaves the holder untouched.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := in.validate(today); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Service:  strings.TrimSpace(in.Service),
		Date:     in.Date,
		TimeSlot: in.TimeSlot,
		Status:   model.BookingPending,
		Notes:    strings.TrimSpace(in.Notes),
		Locale:   string(i18n.FromContext(ctx)),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			metrics.RecordBooking("conflict")
		}
		return nil, classify(err, "Failed to create booking")
	}
	metrics.RecordBooking("created")

	s.confirm(ctx, booking)
	return booking, nil
}

// confirm mails the requester. Failures are logged only.
func (s *BookingService) confirm(ctx context.Context, b *model.Booking) {
	msg, err := notify.BookingReceived(b)
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		s.log.Warn("booking confirmation not sent",
			zap.String("booking_id", b.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *BookingService) List(ctx context.Context, filter repository.BookingFilter) ([]model.Booking, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, classify(err, "Failed to list bookings")
	}
	return bookings, nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown booking status %q", status)
	}
	booking, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, classify(err, "Failed to update booking")
	}
	s.log.Info("booking status changed",
		zap.String("booking_id", id.String()),
		zap.String("status", string(status)),
	)
	return booking, nil
}

// Availability lists the studio slots on date that are still free.
func (s *BookingService) Availability(ctx context.Context, date string) ([]string, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}
	taken, err := s.bookings.TakenSlots(ctx, date)
	if err != nil {
		return nil, classify(err, "Failed to load availability")
	}
	held := make(map[string]bool, len(taken))
	for _, t := range taken {
		held[t] = true
	}
	free := make([]string, 0, len(StudioSlots))
	for _, slot := range StudioSlots {
		if !held[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}
