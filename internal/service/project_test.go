package service_test

import (
	"context"
	"testing"

	"paxala/internal/access"
	"paxala/internal/apperr"
	"paxala/internal/database/dbtest"
	"paxala/internal/model"
	"paxala/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectListFor_ScopesByRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := dbtest.User(t, e.db, model.RoleAdmin)
	staff := dbtest.User(t, e.db, model.RoleStaff)
	client := dbtest.User(t, e.db, model.RoleClient)
	other := dbtest.User(t, e.db, model.RoleClient)

	owned := dbtest.Project(t, e.db, &client.ID)
	dbtest.Project(t, e.db, &other.ID)
	dbtest.AssignStaff(t, e.db, owned.ID, staff.ID)

	all, err := e.projectSvc.ListFor(ctx, &access.Principal{UserID: admin.ID, Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assigned, err := e.projectSvc.ListFor(ctx, &access.Principal{UserID: staff.ID, Role: model.RoleStaff})
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, owned.ID, assigned[0].ID)

	mine, err := e.projectSvc.ListFor(ctx, &access.Principal{UserID: client.ID, Role: model.RoleClient})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, owned.ID, mine[0].ID)
}

func TestProjectCreate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	client := dbtest.User(t, e.db, model.RoleClient)
	staff := dbtest.User(t, e.db, model.RoleStaff)

	p, err := e.projectSvc.Create(ctx, service.CreateProjectInput{Name: " Launch video ", ClientID: &client.ID})
	require.NoError(t, err)
	assert.Equal(t, "Launch video", p.Name)
	assert.Equal(t, model.ProjectPlanning, p.Status)

	_, err = e.projectSvc.Create(ctx, service.CreateProjectInput{Name: ""})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = e.projectSvc.Create(ctx, service.CreateProjectInput{Name: "x", ClientID: &staff.ID})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestProjectSetStaff(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	staff := dbtest.User(t, e.db, model.RoleStaff)
	admin := dbtest.User(t, e.db, model.RoleAdmin)
	client := dbtest.User(t, e.db, model.RoleClient)
	project := dbtest.Project(t, e.db, &client.ID)

	_, err := e.projectSvc.SetStaff(ctx, project.ID, []uuid.UUID{staff.ID, client.ID})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	updated, err := e.projectSvc.SetStaff(ctx, project.ID, []uuid.UUID{staff.ID, admin.ID, staff.ID})
	require.NoError(t, err)
	assert.Len(t, updated.Staff, 2)

	m, err := e.projectSvc.Membership(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, m.HasStaff(staff.ID))
	assert.True(t, m.IsOwner(client.ID))

	updated, err = e.projectSvc.SetStaff(ctx, project.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, updated.Staff)
}

func TestProjectSetContacts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	client := dbtest.User(t, e.db, model.RoleClient)
	other := dbtest.User(t, e.db, model.RoleClient)
	producer := dbtest.User(t, e.db, model.RoleClient)
	project := dbtest.Project(t, e.db, &client.ID)

	own, err := e.contactSvc.Create(ctx, client.ID, service.CreateContactInput{Name: "Producer", UserID: &producer.ID})
	require.NoError(t, err)
	foreign, err := e.contactSvc.Create(ctx, other.ID, service.CreateContactInput{Name: "Someone else"})
	require.NoError(t, err)

	_, err = e.projectSvc.SetContacts(ctx, project.ID, []uuid.UUID{foreign.ID})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	updated, err := e.projectSvc.SetContacts(ctx, project.ID, []uuid.UUID{own.ID})
	require.NoError(t, err)
	require.Len(t, updated.Contacts, 1)

	// The linked contact user now sees the project.
	visible, err := e.projectSvc.ListFor(ctx, &access.Principal{UserID: producer.ID, Role: model.RoleClient})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, project.ID, visible[0].ID)

	m, err := e.projectSvc.Membership(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, m.HasContact(producer.ID))
}

func TestProjectUpdate_ClientChangeDropsForeignContacts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	clientA := dbtest.User(t, e.db, model.RoleClient)
	clientB := dbtest.User(t, e.db, model.RoleClient)
	producer := dbtest.User(t, e.db, model.RoleClient)
	project := dbtest.Project(t, e.db, &clientA.ID)

	contact, err := e.contactSvc.Create(ctx, clientA.ID, service.CreateContactInput{Name: "Producer", UserID: &producer.ID})
	require.NoError(t, err)
	_, err = e.projectSvc.SetContacts(ctx, project.ID, []uuid.UUID{contact.ID})
	require.NoError(t, err)

	// Renaming alone keeps the contacts.
	name := "Renamed"
	updated, err := e.projectSvc.Update(ctx, project.ID, service.UpdateProjectInput{Name: service.Optional[string]{Set: true, Value: &name}})
	require.NoError(t, err)
	assert.Len(t, updated.Contacts, 1)

	updated, err = e.projectSvc.Update(ctx, project.ID, service.UpdateProjectInput{
		ClientID: service.Optional[uuid.UUID]{Set: true, Value: &clientB.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ClientID)
	assert.Equal(t, clientB.ID, *updated.ClientID)
	assert.Empty(t, updated.Contacts)

	m, err := e.projectSvc.Membership(ctx, project.ID)
	require.NoError(t, err)
	assert.False(t, m.HasContact(producer.ID))
	assert.False(t, access.Allowed(&access.Principal{UserID: producer.ID, Role: model.RoleClient}, access.ViewProject, access.ForProject(m)))

	// The contact itself survives; only the project link is gone.
	var count int64
	require.NoError(t, e.db.Model(&model.Contact{}).Where("id = ?", contact.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProjectDelete_Cascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := dbtest.User(t, e.db, model.RoleAdmin)
	project := dbtest.Project(t, e.db, nil)
	m := dbtest.Milestone(t, e.db, project.ID, "Shoot", 0, nil)
	dbtest.AssignStaff(t, e.db, project.ID, admin.ID)
	_, err := e.taskSvc.Create(ctx, admin.ID, m.ID, service.CreateTaskInput{Title: "Crew"})
	require.NoError(t, err)
	_, err = e.commentSvc.Create(ctx, project.ID, admin.ID, "Kickoff done")
	require.NoError(t, err)

	require.NoError(t, e.projectSvc.Delete(ctx, project.ID))

	for _, table := range []any{&model.Milestone{}, &model.Task{}, &model.Comment{}} {
		var n int64
		require.NoError(t, e.db.Model(table).Count(&n).Error)
		assert.Zero(t, n)
	}
	_, err = e.projectSvc.Get(ctx, project.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestContactCreate_RequiresClient(t *testing.T) {
	e := newEnv(t)
	staff := dbtest.User(t, e.db, model.RoleStaff)

	_, err := e.contactSvc.Create(context.Background(), staff.ID, service.CreateContactInput{Name: "x"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = e.contactSvc.Create(context.Background(), uuid.New(), service.CreateContactInput{Name: "x"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
