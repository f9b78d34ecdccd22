package service_test

import (
	"context"
	"testing"

	"paxala/internal/apperr"
	"paxala/internal/database/dbtest"
	"paxala/internal/model"
	"paxala/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneCreate_AppendsAtEnd(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	project := dbtest.Project(t, e.db, nil)

	first, err := e.milestoneSvc.Create(ctx, project.ID, service.CreateMilestoneInput{Title: "Pre-production"})
	require.NoError(t, err)
	second, err := e.milestoneSvc.Create(ctx, project.ID, service.CreateMilestoneInput{Title: "Shoot", Price: ptr(service.Amount(1200))})
	require.NoError(t, err)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.True(t, first.IsVisible)
	assert.Equal(t, model.PaymentUnpaid, second.PaymentStatus)
	require.NotNil(t, second.Price)
	assert.InDelta(t, 1200, *second.Price, 0.001)
}

func TestMilestoneCreate_RequiresTitle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	project := dbtest.Project(t, e.db, nil)

	_, err := e.milestoneSvc.Create(ctx, project.ID, service.CreateMilestoneInput{Title: "   "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var count int64
	require.NoError(t, e.db.Model(&model.Milestone{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMilestoneCreate_UnknownProject(t *testing.T) {
	e := newEnv(t)

	_, err := e.milestoneSvc.Create(context.Background(), uuid.New(), service.CreateMilestoneInput{Title: "Edit"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestMilestoneReorder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	project := dbtest.Project(t, e.db, nil)
	m1 := dbtest.Milestone(t, e.db, project.ID, "m1", 0, nil)
	m2 := dbtest.Milestone(t, e.db, project.ID, "m2", 1, nil)
	m3 := dbtest.Milestone(t, e.db, project.ID, "m3", 2, nil)

	ordered, err := e.milestoneSvc.Reorder(ctx, project.ID, []uuid.UUID{m3.ID, m1.ID, m2.ID})
	require.NoError(t, err)
	require.Len(t, ordered, 3)

	assert.Equal(t, m3.ID, ordered[0].ID)
	assert.Equal(t, m1.ID, ordered[1].ID)
	assert.Equal(t, m2.ID, ordered[2].ID)
	for i, m := range ordered {
		assert.Equal(t, i, m.Order)
	}
}

func TestMilestoneReorder_RejectsMismatchedSets(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	project := dbtest.Project(t, e.db, nil)
	m1 := dbtest.Milestone(t, e.db, project.ID, "m1", 0, nil)
	m2 := dbtest.Milestone(t, e.db, project.ID, "m2", 1, nil)

	other := dbtest.Project(t, e.db, nil)
	foreign := dbtest.Milestone(t, e.db, other.ID, "x", 0, nil)

	cases := map[string][]uuid.UUID{
		"omission":  {m2.ID},
		"duplicate": {m2.ID, m2.ID},
		"extra":     {m2.ID, m1.ID, foreign.ID},
		"foreign":   {m2.ID, foreign.ID},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.milestoneSvc.Reorder(ctx, project.ID, ids)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

			list, err := e.milestoneSvc.List(ctx, project.ID, false)
			require.NoError(t, err)
			assert.Equal(t, m1.ID, list[0].ID)
			assert.Equal(t, m2.ID, list[1].ID)
		})
	}
}

func TestMilestoneUpdate_PartialFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	project := dbtest.Project(t, e.db, nil)
	m := dbtest.Milestone(t, e.db, project.ID, "Edit", 0, ptr(300.0))

	updated, err := e.milestoneSvc.Update(ctx, m.ID, service.UpdateMilestoneInput{
		Price:     service.Some(service.Amount(450.5)),
		IsVisible: service.Some(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Edit", updated.Title)
	assert.False(t, updated.IsVisible)
	require.NotNil(t, updated.Price)
	assert.InDelta(t, 450.5, *updated.Price, 0.001)

	cleared, err := e.milestoneSvc.Update(ctx, m.ID, service.UpdateMilestoneInput{Price: service.Null[service.Amount]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Price)

	_, err = e.milestoneSvc.Update(ctx, m.ID, service.UpdateMilestoneInput{Title: service.Some("")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMilestoneList_HidesInvisibleForClients(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	project := dbtest.Project(t, e.db, nil)
	dbtest.Milestone(t, e.db, project.ID, "visible", 0, nil)
	hidden := dbtest.Milestone(t, e.db, project.ID, "hidden", 1, nil)
	require.NoError(t, e.db.Model(hidden).Update("is_visible", false).Error)

	all, err := e.milestoneSvc.List(ctx, project.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := e.milestoneSvc.List(ctx, project.ID, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "visible", visible[0].Title)
}

func TestMilestoneDelete_RemovesTasks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := dbtest.User(t, e.db, model.RoleAdmin)
	project := dbtest.Project(t, e.db, nil)
	m := dbtest.Milestone(t, e.db, project.ID, "Shoot", 0, nil)

	_, err := e.taskSvc.Create(ctx, admin.ID, m.ID, service.CreateTaskInput{Title: "Book crew"})
	require.NoError(t, err)

	require.NoError(t, e.milestoneSvc.Delete(ctx, m.ID))

	var tasks int64
	require.NoError(t, e.db.Model(&model.Task{}).Count(&tasks).Error)
	assert.Zero(t, tasks)

	err = e.milestoneSvc.Delete(ctx, m.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
