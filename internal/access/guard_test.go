package access_test

import (
	"errors"
	"testing"

	"paxala/internal/access"
	"paxala/internal/apperr"
	"paxala/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fixture struct {
	admin, staff, otherStaff, client, otherClient, contact *access.Principal
	project                                                *model.Membership
}

func newFixture() fixture {
	p := func(r model.Role) *access.Principal { return &access.Principal{UserID: uuid.New(), Role: r} }
	f := fixture{
		admin:       p(model.RoleAdmin),
		staff:       p(model.RoleStaff),
		otherStaff:  p(model.RoleStaff),
		client:      p(model.RoleClient),
		otherClient: p(model.RoleClient),
		contact:     p(model.RoleClient),
	}
	clientID := f.client.UserID
	f.project = &model.Membership{
		ProjectID:  uuid.New(),
		ClientID:   &clientID,
		StaffIDs:   []uuid.UUID{f.staff.UserID},
		ContactIDs: []uuid.UUID{f.contact.UserID},
	}
	return f
}

func TestViewProject(t *testing.T) {
	f := newFixture()
	res := access.ForProject(f.project)

	assert.True(t, access.Allowed(f.admin, access.ViewProject, res))
	assert.True(t, access.Allowed(f.staff, access.ViewProject, res))
	assert.False(t, access.Allowed(f.otherStaff, access.ViewProject, res))
	assert.True(t, access.Allowed(f.client, access.ViewProject, res))
	assert.True(t, access.Allowed(f.contact, access.ViewProject, res))
	assert.False(t, access.Allowed(f.otherClient, access.ViewProject, res))
}

func TestMilestoneCapabilitiesAreAdminOnly(t *testing.T) {
	f := newFixture()
	res := access.ForProject(f.project)

	for _, c := range []access.Capability{access.ManageMilestones, access.UpdateMilestones} {
		assert.True(t, access.Allowed(f.admin, c, res), c)
		assert.False(t, access.Allowed(f.staff, c, res), c)
		assert.False(t, access.Allowed(f.client, c, res), c)
	}
}

func TestManageTasks(t *testing.T) {
	f := newFixture()
	res := access.ForProject(f.project)

	assert.True(t, access.Allowed(f.admin, access.ManageTasks, res))
	assert.True(t, access.Allowed(f.staff, access.ManageTasks, res))
	assert.False(t, access.Allowed(f.otherStaff, access.ManageTasks, res))
	assert.False(t, access.Allowed(f.staff, access.ManageTasks, access.Resource{}))
	assert.False(t, access.Allowed(f.client, access.ManageTasks, res))
}

func TestComments(t *testing.T) {
	f := newFixture()
	res := access.ForProject(f.project)

	assert.True(t, access.Allowed(f.staff, access.PostComment, res))
	assert.True(t, access.Allowed(f.client, access.PostComment, res))
	assert.False(t, access.Allowed(f.otherClient, access.PostComment, res))

	own := access.ForComment(f.project, f.client.UserID)
	assert.True(t, access.Allowed(f.client, access.DeleteComment, own))
	assert.True(t, access.Allowed(f.admin, access.DeleteComment, own))
	assert.False(t, access.Allowed(f.staff, access.DeleteComment, own))

	someoneElses := access.ForComment(f.project, f.staff.UserID)
	assert.False(t, access.Allowed(f.client, access.DeleteComment, someoneElses))
}

func TestCheckDistinguishesUnauthorizedAndForbidden(t *testing.T) {
	f := newFixture()
	res := access.ForProject(f.project)

	err := access.Check(nil, access.ViewProject, res)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	err = access.Check(f.otherClient, access.ViewProject, res)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	assert.NoError(t, access.Check(f.client, access.ViewProject, res))
}

func TestUnknownRoleIsDenied(t *testing.T) {
	p := &access.Principal{UserID: uuid.New(), Role: model.Role("GUEST")}
	assert.False(t, access.Allowed(p, access.ViewProject, access.Resource{}))
	assert.False(t, access.Allowed(p, access.UploadFiles, access.Resource{}))
}
