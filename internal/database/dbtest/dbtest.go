// Package dbtest opens throwaway in-memory sqlite databases for tests and
// seeds the rows most tests need.
package dbtest

import (
	"testing"

	"paxala/internal/database"
	"paxala/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns a migrated sqlite database private to the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := database.OpenDSN(database.DriverSQLite, dsn, true, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func User(t testing.TB, db *gorm.DB, role model.Role) *model.User {
	t.Helper()
	id := uuid.New()
	u := &model.User{
		ID:             id,
		Email:          id.String()[:8] + "@studio.test",
		Name:           string(role) + " " + id.String()[:4],
		HashedPassword: "x",
		Role:           role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// Project creates a project owned by clientID (nil for none).
func Project(t testing.TB, db *gorm.DB, clientID *uuid.UUID) *model.Project {
	t.Helper()
	p := &model.Project{Name: "Brand film", Status: model.ProjectInProgress, ClientID: clientID}
	require.NoError(t, db.Omit("Client", "Staff", "Contacts").Create(p).Error)
	return p
}

func Milestone(t testing.TB, db *gorm.DB, projectID uuid.UUID, title string, order int, price *float64) *model.Milestone {
	t.Helper()
	m := &model.Milestone{ProjectID: projectID, Title: title, Order: order, Price: price, IsVisible: true}
	require.NoError(t, db.Omit("Tasks").Create(m).Error)
	return m
}

func AssignStaff(t testing.TB, db *gorm.DB, projectID, userID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Exec("INSERT INTO project_staff (project_id, user_id) VALUES (?, ?)", projectID, userID).Error)
}
