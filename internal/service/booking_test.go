package service_test

import (
	"context"
	"testing"
	"time"

	"paxala/internal/apperr"
	"paxala/internal/i18n"
	"paxala/internal/model"
	"paxala/internal/repository"
	"paxala/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextWeek() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func bookingInput(date, slot string) service.CreateBookingInput {
	return service.CreateBookingInput{
		Name:     "Dana Levi",
		Email:    "Dana@Example.com",
		Service:  "Podcast recording",
		Date:     date,
		TimeSlot: slot,
	}
}

func TestBookingCreate_SlotConflict(t *testing.T) {
	e := newEnv(t)
	ctx := i18n.WithLocale(context.Background(), i18n.Hebrew)
	date := nextWeek()

	first, err := e.bookingSvc.Create(ctx, bookingInput(date, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, first.Status)
	assert.Equal(t, "dana@example.com", first.Email)
	assert.Equal(t, "he", first.Locale)

	_, err = e.bookingSvc.Create(ctx, bookingInput(date, "10:00"))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	bookings, err := e.bookingSvc.List(ctx, repository.BookingFilter{Date: date})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, first.ID, bookings[0].ID)
	assert.Equal(t, model.BookingPending, bookings[0].Status)

	sent := e.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"dana@example.com"}, sent[0].To)
}

func TestBookingCancelReleasesSlot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	date := nextWeek()

	first, err := e.bookingSvc.Create(ctx, bookingInput(date, "14:00"))
	require.NoError(t, err)

	_, err = e.bookingSvc.UpdateStatus(ctx, first.ID, model.BookingCancelled)
	require.NoError(t, err)

	second, err := e.bookingSvc.Create(ctx, bookingInput(date, "14:00"))
	require.NoError(t, err)

	_, err = e.bookingSvc.UpdateStatus(ctx, second.ID, model.BookingConfirmed)
	require.NoError(t, err)

	// The cancelled booking cannot take the slot back.
	_, err = e.bookingSvc.UpdateStatus(ctx, first.ID, model.BookingPending)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestBookingCreate_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	cases := map[string]service.CreateBookingInput{
		"past date":    bookingInput(yesterday, "10:00"),
		"bad date":     bookingInput("next tuesday", "10:00"),
		"unknown slot": bookingInput(nextWeek(), "10:30"),
		"bad email": func() service.CreateBookingInput {
			in := bookingInput(nextWeek(), "10:00")
			in.Email = "not-an-email"
			return in
		}(),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.bookingSvc.Create(ctx, in)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestBookingAvailability(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	date := nextWeek()

	_, err := e.bookingSvc.Create(ctx, bookingInput(date, "09:00"))
	require.NoError(t, err)

	free, err := e.bookingSvc.Availability(ctx, date)
	require.NoError(t, err)
	assert.NotContains(t, free, "09:00")
	assert.Len(t, free, len(service.StudioSlots)-1)

	_, err = e.bookingSvc.Availability(ctx, "2026/01/01")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestBookingUpdateStatus_Unknown(t *testing.T) {
	e := newEnv(t)
	first, err := e.bookingSvc.Create(context.Background(), bookingInput(nextWeek(), "11:00"))
	require.NoError(t, err)

	_, err = e.bookingSvc.UpdateStatus(context.Background(), first.ID, "LOST")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
