package service

import (
	"context"
	"io"
	"time"

	"paxala/internal/apperr"
	"paxala/internal/export"
	"paxala/internal/metrics"
	"paxala/internal/model"
	"paxala/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentRequest struct {
	Status model.PaymentStatus `json:"status"`
	Date   *time.Time          `json:"paymentDate"`
	Amount *Amount             `json:"paymentAmount"`
}

// PaymentFields are the milestone columns a payment update writes.
type PaymentFields struct {
	Status model.PaymentStatus
	Date   *time.Time
	Amount *float64
}

// ApplyPayment derives the payment fields of m for req:
//
//	PAID     date = given or now, amount = given or m.Price
//	PARTIAL  date = given or now, amount = given or nil
//	UNPAID   date and amount cleared
func ApplyPayment(m *model.Milestone, req PaymentRequest, now time.Time) (PaymentFields, error) {
	if err := req.Amount.check("paymentAmount"); err != nil {
		return PaymentFields{}, err
	}

	out := PaymentFields{Status: req.Status}
	switch req.Status {
	case model.PaymentPaid:
		out.Date = dateOrNow(req.Date, now)
		out.Amount = req.Amount.Float()
		if out.Amount == nil && m.Price != nil {
			price := *m.Price
			out.Amount = &price
		}
	case model.PaymentPartial:
		out.Date = dateOrNow(req.Date, now)
		out.Amount = req.Amount.Float()
	case model.PaymentUnpaid:
	default:
		return PaymentFields{}, apperr.Validation("paymentStatus must be one of UNPAID, PARTIAL, PAID")
	}
	return out, nil
}

func dateOrNow(d *time.Time, now time.Time) *time.Time {
	if d != nil {
		v := *d
		return &v
	}
	return &now
}

type PaymentService struct {
	projects   *repository.ProjectRepository
	milestones *repository.MilestoneRepository
	log        *zap.Logger
	now        func() time.Time
}

func NewPaymentService(projects *repository.ProjectRepository, milestones *repository.MilestoneRepository, log *zap.Logger) *PaymentService {
	return &PaymentService{projects: projects, milestones: milestones, log: log, now: time.Now}
}

// SetPaymentStatus records a payment state change on one milestone.
func (s *PaymentService) SetPaymentStatus(ctx context.Context, milestoneID uuid.UUID, req PaymentRequest) (*model.Milestone, error) {
	m, err := s.milestones.GetByID(ctx, milestoneID)
	if err != nil {
		return nil, classify(err, "Failed to load milestone")
	}

	fields, err := ApplyPayment(m, req, s.now().UTC())
	if err != nil {
		return nil, err
	}

	err = s.milestones.Update(ctx, milestoneID, map[string]interface{}{
		"payment_status": fields.Status,
		"payment_date":   fields.Date,
		"payment_amount": fields.Amount,
	})
	if err != nil {
		return nil, classify(err, "Failed to update payment")
	}

	m.PaymentStatus = fields.Status
	m.PaymentDate = fields.Date
	m.PaymentAmount = fields.Amount

	metrics.RecordPayment(string(fields.Status))
	s.log.Info("milestone payment updated",
		zap.String("milestone_id", milestoneID.String()),
		zap.String("status", string(fields.Status)),
	)
	return m, nil
}

// Summary totals the payment state of a project. It is informational;
// nothing reconciles it against milestone prices.
func (s *PaymentService) Summary(ctx context.Context, projectID uuid.UUID) (*model.PaymentSummary, error) {
	milestones, err := s.milestones.ListByProject(ctx, projectID, false)
	if err != nil {
		return nil, classify(err, "Failed to list milestones")
	}
	summary := model.SummarizePayments(milestones)
	return &summary, nil
}

// Export writes the project's payment report as an XLSX workbook.
func (s *PaymentService) Export(ctx context.Context, projectID uuid.UUID, w io.Writer) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return classify(err, "Failed to load project")
	}
	milestones, err := s.milestones.ListByProject(ctx, projectID, false)
	if err != nil {
		return classify(err, "Failed to list milestones")
	}
	if err := export.WritePayments(w, project, milestones); err != nil {
		return apperr.Internal("Failed to render payment report", err)
	}
	return nil
}
