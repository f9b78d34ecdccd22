package handler

import (
	"paxala/internal/access"
	"paxala/internal/model"
	"paxala/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Guard runs project-scoped access checks for handlers.
type Guard struct {
	projects *service.ProjectService
}

func NewGuard(projects *service.ProjectService) *Guard {
	return &Guard{projects: projects}
}

// Project loads the project's membership and checks capability against it.
// On failure the response is already written.
func (g *Guard) Project(c *gin.Context, projectID uuid.UUID, capability access.Capability) (*access.Principal, *model.Membership, bool) {
	p, ok := principal(c)
	if !ok {
		return nil, nil, false
	}
	m, err := g.projects.Membership(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	if err := access.Check(p, capability, access.ForProject(m)); err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	return p, m, true
}

// visibleOnly reports whether p only sees milestones and tasks marked visible.
func visibleOnly(p *access.Principal) bool {
	return p.Role == model.RoleClient
}

// Comment checks capability on an existing comment of the project.
func (g *Guard) Comment(c *gin.Context, comment *model.Comment, capability access.Capability) bool {
	p, ok := principal(c)
	if !ok {
		return false
	}
	m, err := g.projects.Membership(c.Request.Context(), comment.ProjectID)
	if err != nil {
		respondError(c, err)
		return false
	}
	if err := access.Check(p, capability, access.ForComment(m, comment.AuthorID)); err != nil {
		respondError(c, err)
		return false
	}
	return true
}
