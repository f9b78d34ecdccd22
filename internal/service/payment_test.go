package service_test

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"paxala/internal/apperr"
	"paxala/internal/database/dbtest"
	"paxala/internal/model"
	"paxala/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestApplyPayment(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	paidOn := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	priced := &model.Milestone{Price: ptr(500.0)}

	t.Run("paid defaults to price and now", func(t *testing.T) {
		f, err := service.ApplyPayment(priced, service.PaymentRequest{Status: model.PaymentPaid}, now)
		require.NoError(t, err)
		require.NotNil(t, f.Amount)
		assert.InDelta(t, 500, *f.Amount, 0.001)
		assert.Equal(t, now, *f.Date)
	})

	t.Run("paid keeps supplied values", func(t *testing.T) {
		f, err := service.ApplyPayment(priced, service.PaymentRequest{
			Status: model.PaymentPaid,
			Date:   &paidOn,
			Amount: ptr(service.Amount(480)),
		}, now)
		require.NoError(t, err)
		assert.InDelta(t, 480, *f.Amount, 0.001)
		assert.Equal(t, paidOn, *f.Date)
	})

	t.Run("paid without price leaves amount empty", func(t *testing.T) {
		f, err := service.ApplyPayment(&model.Milestone{}, service.PaymentRequest{Status: model.PaymentPaid}, now)
		require.NoError(t, err)
		assert.Nil(t, f.Amount)
	})

	t.Run("partial has no default amount", func(t *testing.T) {
		f, err := service.ApplyPayment(priced, service.PaymentRequest{Status: model.PaymentPartial}, now)
		require.NoError(t, err)
		assert.Nil(t, f.Amount)
		assert.Equal(t, now, *f.Date)
	})

	t.Run("unpaid clears", func(t *testing.T) {
		f, err := service.ApplyPayment(priced, service.PaymentRequest{
			Status: model.PaymentUnpaid,
			Date:   &paidOn,
			Amount: ptr(service.Amount(10)),
		}, now)
		require.NoError(t, err)
		assert.Nil(t, f.Date)
		assert.Nil(t, f.Amount)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := service.ApplyPayment(priced, service.PaymentRequest{Status: "REFUNDED"}, now)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := service.ApplyPayment(priced, service.PaymentRequest{
			Status: model.PaymentPartial,
			Amount: ptr(service.Amount(-1)),
		}, now)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("non-finite amount", func(t *testing.T) {
		_, err := service.ApplyPayment(priced, service.PaymentRequest{
			Status: model.PaymentPartial,
			Amount: ptr(service.Amount(math.Inf(1))),
		}, now)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestSetPaymentStatus_PaidThenUnpaid(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	project := dbtest.Project(t, e.db, nil)
	m := dbtest.Milestone(t, e.db, project.ID, "Delivery", 0, ptr(500.0))

	paid, err := e.paymentSvc.SetPaymentStatus(ctx, m.ID, service.PaymentRequest{Status: model.PaymentPaid})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, paid.PaymentStatus)

	stored, err := e.milestones.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaymentAmount)
	assert.InDelta(t, 500, *stored.PaymentAmount, 0.001)
	require.NotNil(t, stored.PaymentDate)
	assert.WithinDuration(t, time.Now(), *stored.PaymentDate, 5*time.Second)

	_, err = e.paymentSvc.SetPaymentStatus(ctx, m.ID, service.PaymentRequest{Status: model.PaymentUnpaid})
	require.NoError(t, err)

	stored, err = e.milestones.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentUnpaid, stored.PaymentStatus)
	assert.Nil(t, stored.PaymentDate)
	assert.Nil(t, stored.PaymentAmount)
}

func TestPaymentSummaryAndExport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	project := dbtest.Project(t, e.db, nil)
	a := dbtest.Milestone(t, e.db, project.ID, "Script", 0, ptr(500.0))
	b := dbtest.Milestone(t, e.db, project.ID, "Shoot", 1, ptr(300.0))

	_, err := e.paymentSvc.SetPaymentStatus(ctx, a.ID, service.PaymentRequest{Status: model.PaymentPaid})
	require.NoError(t, err)
	_, err = e.paymentSvc.SetPaymentStatus(ctx, b.ID, service.PaymentRequest{
		Status: model.PaymentPartial,
		Amount: ptr(service.Amount(100)),
	})
	require.NoError(t, err)

	summary, err := e.paymentSvc.Summary(ctx, project.ID)
	require.NoError(t, err)
	assert.InDelta(t, 800, summary.Priced, 0.001)
	assert.InDelta(t, 600, summary.Paid, 0.001)
	assert.InDelta(t, 200, summary.Outstanding, 0.001)

	var buf bytes.Buffer
	require.NoError(t, e.paymentSvc.Export(ctx, project.ID, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue("Payments", "A1")
	require.NoError(t, err)
	assert.Equal(t, project.Name, name)
}
