// Package access decides what a signed-in user may do. Handlers and
// middleware ask the guard; nothing else branches on roles.
package access

import (
	"paxala/internal/apperr"
	"paxala/internal/model"

	"github.com/google/uuid"
)

type Capability string

const (
	ViewProject      Capability = "project:view"
	ManageProjects   Capability = "project:manage"
	ManageMilestones Capability = "milestone:manage"
	UpdateMilestones Capability = "milestone:update"
	ManageTasks      Capability = "task:manage"
	PostComment      Capability = "comment:post"
	DeleteComment    Capability = "comment:delete"

	ManageUsers    Capability = "user:manage"
	ManageContent  Capability = "content:manage"
	ManageBookings Capability = "booking:manage"
	ManageInquiry  Capability = "inquiry:manage"
	UploadFiles    Capability = "upload:create"
)

// Principal is the authenticated caller.
type Principal struct {
	UserID uuid.UUID
	Role   model.Role
}

// Resource carries what a project-scoped check needs. Role-only
// capabilities ignore it.
type Resource struct {
	Project         *model.Membership
	CommentAuthorID *uuid.UUID
}

func ForProject(m *model.Membership) Resource {
	return Resource{Project: m}
}

func ForComment(m *model.Membership, authorID uuid.UUID) Resource {
	return Resource{Project: m, CommentAuthorID: &authorID}
}

type rule func(p *Principal, r Resource) bool

func always(*Principal, Resource) bool { return true }
func never(*Principal, Resource) bool  { return false }

func assignedStaff(p *Principal, r Resource) bool {
	return r.Project != nil && r.Project.HasStaff(p.UserID)
}

func projectClient(p *Principal, r Resource) bool {
	if r.Project == nil {
		return false
	}
	return r.Project.IsOwner(p.UserID) || r.Project.HasContact(p.UserID)
}

func projectOwner(p *Principal, r Resource) bool {
	return r.Project != nil && r.Project.IsOwner(p.UserID)
}

func commentAuthor(p *Principal, r Resource) bool {
	return r.CommentAuthorID != nil && *r.CommentAuthorID == p.UserID
}

var matrix = map[Capability]map[model.Role]rule{
	ViewProject: {
		model.RoleAdmin:  always,
		model.RoleStaff:  assignedStaff,
		model.RoleClient: projectClient,
	},
	ManageProjects:   adminOnly(),
	ManageMilestones: adminOnly(),
	UpdateMilestones: adminOnly(),
	ManageTasks: {
		model.RoleAdmin:  always,
		model.RoleStaff:  assignedStaff,
		model.RoleClient: never,
	},
	PostComment: {
		model.RoleAdmin:  always,
		model.RoleStaff:  always,
		model.RoleClient: projectOwner,
	},
	DeleteComment: {
		model.RoleAdmin:  always,
		model.RoleStaff:  never,
		model.RoleClient: commentAuthor,
	},
	ManageUsers:    adminOnly(),
	ManageContent:  adminOnly(),
	ManageBookings: adminOnly(),
	ManageInquiry:  adminOnly(),
	UploadFiles: {
		model.RoleAdmin: always,
		model.RoleStaff: always,
	},
}

func adminOnly() map[model.Role]rule {
	return map[model.Role]rule{model.RoleAdmin: always}
}

// Allowed reports whether p holds capability c on r.
func Allowed(p *Principal, c Capability, r Resource) bool {
	if p == nil {
		return false
	}
	check, ok := matrix[c][p.Role]
	return ok && check(p, r)
}

// Check is Allowed as an error: apperr Unauthorized without a principal,
// Forbidden when the capability is not held.
func Check(p *Principal, c Capability, r Resource) error {
	if p == nil || p.UserID == uuid.Nil {
		return apperr.Unauthorized("Not authenticated")
	}
	if !Allowed(p, c, r) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}
