package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

// Milestone is a billing and delivery checkpoint of a project. Order is the
// position inside the project, starting at 0.
type Milestone struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"projectId"`
	Title         string        `gorm:"not null" json:"title"`
	Description   *string       `gorm:"type:text" json:"description,omitempty"`
	Order         int           `gorm:"column:position;not null" json:"order"`
	Price         *float64      `gorm:"type:numeric(12,2)" json:"price,omitempty"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);not null" json:"paymentStatus"`
	PaymentDate   *time.Time    `json:"paymentDate"`
	PaymentAmount *float64      `gorm:"type:numeric(12,2)" json:"paymentAmount"`
	Deadline      *time.Time    `json:"deadline,omitempty"`
	IsVisible     bool          `gorm:"not null" json:"isVisible"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Tasks []Task `gorm:"constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.PaymentStatus == "" {
		m.PaymentStatus = PaymentUnpaid
	}
	return nil
}

// PaymentSummary totals the payment fields of a project's milestones.
// Paid counts recorded amounts of PAID and PARTIAL milestones; Outstanding
// is Priced minus Paid and can go negative on overpayment.
type PaymentSummary struct {
	Milestones  int                   `json:"milestones"`
	Priced      float64               `json:"totalPrice"`
	Paid        float64               `json:"totalPaid"`
	Outstanding float64               `json:"outstanding"`
	ByStatus    map[PaymentStatus]int `json:"byStatus"`
}

func SummarizePayments(milestones []Milestone) PaymentSummary {
	s := PaymentSummary{
		Milestones: len(milestones),
		ByStatus: map[PaymentStatus]int{
			PaymentUnpaid:  0,
			PaymentPartial: 0,
			PaymentPaid:    0,
		},
	}
	for _, m := range milestones {
		s.ByStatus[m.PaymentStatus]++
		if m.Price != nil {
			s.Priced += *m.Price
		}
		if m.PaymentStatus != PaymentUnpaid && m.PaymentAmount != nil {
			s.Paid += *m.PaymentAmount
		}
	}
	s.Outstanding = s.Priced - s.Paid
	return s
}
