package service

import (
	"context"
	"strings"
	"time"

	"paxala/internal/access"
	"paxala/internal/apperr"
	"paxala/internal/model"
	"paxala/internal/repository"

	"github.com/google/uuid"
)

type ProjectService struct {
	projects *repository.ProjectRepository
	users    *repository.UserRepository
	contacts *repository.ContactRepository
}

func NewProjectService(projects *repository.ProjectRepository, users *repository.UserRepository, contacts *repository.ContactRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users, contacts: contacts}
}

// Membership is what handlers pass to the access guard.
func (s *ProjectService) Membership(ctx context.Context, projectID uuid.UUID) (*model.Membership, error) {
	m, err := s.projects.Membership(ctx, projectID)
	if err != nil {
		return nil, classify(err, "Failed to load project")
	}
	return m, nil
}

// ListFor returns the projects visible to p.
func (s *ProjectService) ListFor(ctx context.Context, p *access.Principal) ([]model.Project, error) {
	var (
		projects []model.Project
		err      error
	)
	switch p.Role {
	case model.RoleAdmin:
		projects, err = s.projects.ListAll(ctx)
	case model.RoleStaff:
		projects, err = s.projects.ListForStaff(ctx, p.UserID)
	case model.RoleClient:
		projects, err = s.projects.ListForClient(ctx, p.UserID)
	default:
		return nil, apperr.Forbidden("Insufficient permissions")
	}
	if err != nil {
		return nil, classify(err, "Failed to list projects")
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "Failed to load project")
	}
	return project, nil
}

type CreateProjectInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Status      model.ProjectStatus `json:"status"`
	ClientID    *uuid.UUID          `json:"clientId"`
	StartDate   *time.Time          `json:"startDate"`
	EndDate     *time.Time          `json:"endDate"`
}

func (s *ProjectService) checkClient(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	user, err := s.users.GetByID(ctx, *id)
	if err != nil {
		return classify(err, "Failed to load client")
	}
	if user == nil {
		return apperr.NotFound("Client not found")
	}
	if user.Role != model.RoleClient {
		return apperr.Validation("clientId must reference a CLIENT user")
	}
	return nil
}

func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if in.Status == "" {
		in.Status = model.ProjectPlanning
	}
	if !in.Status.Valid() {
		return nil, apperr.Validation("unknown project status %q", in.Status)
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, apperr.Validation("endDate must not be before startDate")
	}
	if err := s.checkClient(ctx, in.ClientID); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:        name,
		Description: in.Description,
		Status:      in.Status,
		ClientID:    in.ClientID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, classify(err, "Failed to create project")
	}
	return project, nil
}

type UpdateProjectInput struct {
	Name        Optional[string]              `json:"name"`
	Description Optional[string]              `json:"description"`
	Status      Optional[model.ProjectStatus] `json:"status"`
	ClientID    Optional[uuid.UUID]           `json:"clientId"`
	StartDate   Optional[time.Time]           `json:"startDate"`
	EndDate     Optional[time.Time]           `json:"endDate"`
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*model.Project, error) {
	fields := map[string]interface{}{}
	if in.Name.Set {
		if in.Name.Value == nil || strings.TrimSpace(*in.Name.Value) == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		fields["name"] = strings.TrimSpace(*in.Name.Value)
	}
	if in.Description.Set {
		desc := ""
		if in.Description.Value != nil {
			desc = *in.Description.Value
		}
		fields["description"] = desc
	}
	if in.Status.Set {
		if in.Status.Value == nil || !in.Status.Value.Valid() {
			return nil, apperr.Validation("unknown project status")
		}
		fields["status"] = *in.Status.Value
	}
	if in.ClientID.Set {
		if err := s.checkClient(ctx, in.ClientID.Value); err != nil {
			return nil, err
		}
		fields["client_id"] = in.ClientID.Value
	}
	if in.StartDate.Set {
		fields["start_date"] = in.StartDate.Value
	}
	if in.EndDate.Set {
		fields["end_date"] = in.EndDate.Value
	}

	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return nil, classify(err, "Failed to load project")
	}
	if err := s.projects.Update(ctx, id, fields); err != nil {
		return nil, classify(err, "Failed to update project")
	}
	return s.Get(ctx, id)
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return classify(err, "Failed to delete project")
	}
	return nil
}

// SetStaff replaces the project's staff. Every user must be ADMIN or STAFF.
func (s *ProjectService) SetStaff(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) (*model.Project, error) {
	ids := dedupe(userIDs)
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, classify(err, "Failed to load users")
	}
	if len(users) != len(ids) {
		return nil, apperr.NotFound("User not found")
	}
	for _, u := range users {
		if !u.Role.IsTeam() {
			return nil, apperr.Validation("%s is not a staff member", u.Email)
		}
	}

	if ok, err := s.projects.Exists(ctx, projectID); err != nil {
		return nil, classify(err, "Failed to load project")
	} else if !ok {
		return nil, apperr.NotFound("Project not found")
	}
	if err := s.projects.ReplaceStaff(ctx, projectID, ids); err != nil {
		return nil, classify(err, "Failed to update project staff")
	}
	return s.Get(ctx, projectID)
}

// SetContacts replaces the project's contacts. Every contact must belong to
// the project's client.
func (s *ProjectService) SetContacts(ctx context.Context, projectID uuid.UUID, contactIDs []uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, classify(err, "Failed to load project")
	}

	ids := dedupe(contactIDs)
	if len(ids) > 0 && project.ClientID == nil {
		return nil, apperr.Validation("project has no client to attach contacts from")
	}
	contacts, err := s.contacts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, classify(err, "Failed to load contacts")
	}
	if len(contacts) != len(ids) {
		return nil, apperr.NotFound("Contact not found")
	}
	for _, c := range contacts {
		if c.ClientID != *project.ClientID {
			return nil, apperr.Validation("contact %s does not belong to the project's client", c.Name)
		}
	}

	if err := s.projects.ReplaceContacts(ctx, projectID, ids); err != nil {
		return nil, classify(err, "Failed to update project contacts")
	}
	return s.Get(ctx, projectID)
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
