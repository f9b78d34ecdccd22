package service

import (
	"context"
	"strings"

	"paxala/internal/apperr"
	"paxala/internal/i18n"
	"paxala/internal/metrics"
	"paxala/internal/model"
	"paxala/internal/notify"
	"paxala/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxInquiryLength = 5000

type InquiryService struct {
	inquiries *repository.InquiryRepository
	mailer    notify.Mailer
	inbox     string
	log       *zap.Logger
}

// NewInquiryService builds the inquiry service. With an empty inbox no
// notification is sent.
func NewInquiryService(inquiries *repository.InquiryRepository, mailer notify.Mailer, inbox string, log *zap.Logger) *InquiryService {
	return &InquiryService{inquiries: inquiries, mailer: mailer, inbox: inbox, log: log}
}

type CreateInquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *InquiryService) Create(ctx context.Context, in CreateInquiryInput) (*model.ContactInquiry, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("name is required")
	}
	if !validEmail(strings.TrimSpace(in.Email)) {
		return nil, apperr.Validation("email is invalid")
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, apperr.Validation("message is required")
	}
	if len(message) > maxInquiryLength {
		return nil, apperr.Validation("message is longer than %d characters", maxInquiryLength)
	}

	inquiry := &model.ContactInquiry{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   strings.TrimSpace(in.Phone),
		Company: strings.TrimSpace(in.Company),
		Subject: strings.TrimSpace(in.Subject),
		Message: message,
		Status:  model.InquiryNew,
		Locale:  string(i18n.FromContext(ctx)),
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, classify(err, "Failed to store inquiry")
	}
	metrics.InquiriesReceived.Inc()

	if s.inbox != "" {
		msg, err := notify.InquiryReceived(s.inbox, inquiry)
		if err == nil {
			err = s.mailer.Send(ctx, msg)
		}
		if err != nil {
			s.log.Warn("inquiry notification not sent",
				zap.String("inquiry_id", inquiry.ID.String()),
				zap.Error(err),
			)
		}
	}
	return inquiry, nil
}

func (s *InquiryService) List(ctx context.Context, filter repository.InquiryFilter) ([]model.ContactInquiry, error) {
	inquiries, err := s.inquiries.List(ctx, filter)
	if err != nil {
		return nil, classify(err, "Failed to list inquiries")
	}
	return inquiries, nil
}

func (s *InquiryService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InquiryStatus) (*model.ContactInquiry, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown inquiry status %q", status)
	}
	inquiry, err := s.inquiries.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, classify(err, "Failed to update inquiry")
	}
	return inquiry, nil
}
