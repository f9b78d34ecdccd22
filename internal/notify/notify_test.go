package notify_test

import (
	"context"
	"testing"

	"paxala/internal/config"
	"paxala/internal/model"
	"paxala/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_FallsBackToLog(t *testing.T) {
	m := notify.New(&config.Config{}, zap.NewNop())
	_, ok := m.(*notify.LogMailer)
	assert.True(t, ok)

	m = notify.New(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587}, zap.NewNop())
	_, ok = m.(*notify.SMTPMailer)
	assert.True(t, ok)

	m = notify.New(&config.Config{ResendAPIKey: "re_test", SMTPHost: "smtp.example.com"}, zap.NewNop())
	_, ok = m.(*notify.ResendMailer)
	assert.True(t, ok)
}

func TestBookingReceived_Localized(t *testing.T) {
	b := &model.Booking{
		Name:     "<b>Dana</b>",
		Email:    "dana@example.com",
		Service:  "Podcast",
		Date:     "2026-11-02",
		TimeSlot: "10:00",
		Locale:   "he",
	}

	msg, err := notify.BookingReceived(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"dana@example.com"}, msg.To)
	assert.Equal(t, "קיבלנו את בקשת ההזמנה שלך", msg.Subject)
	assert.Contains(t, msg.HTML, "&lt;b&gt;Dana&lt;/b&gt;")
	assert.Contains(t, msg.HTML, "2026-11-02 10:00")

	b.Locale = "fr"
	msg, err = notify.BookingReceived(b)
	require.NoError(t, err)
	assert.Equal(t, "We received your booking request", msg.Subject)
}

func TestLogMailer_RecordsMessages(t *testing.T) {
	m := notify.NewLogMailer(zap.NewNop())
	inq := &model.ContactInquiry{Name: "Omar", Email: "omar@example.com", Subject: "Ad spot", Message: "Hi"}

	msg, err := notify.InquiryReceived("studio@example.com", inq)
	require.NoError(t, err)
	require.NoError(t, m.Send(context.Background(), msg))

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "New inquiry from Omar: Ad spot", sent[0].Subject)
	assert.Equal(t, []string{"studio@example.com"}, sent[0].To)
}
