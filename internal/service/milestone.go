package service

import (
	"context"
	"strings"
	"time"

	"paxala/internal/apperr"
	"paxala/internal/model"
	"paxala/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MilestoneService struct {
	projects   *repository.ProjectRepository
	milestones *repository.MilestoneRepository
	log        *zap.Logger
}

func NewMilestoneService(projects *repository.ProjectRepository, milestones *repository.MilestoneRepository, log *zap.Logger) *MilestoneService {
	return &MilestoneService{projects: projects, milestones: milestones, log: log}
}

type CreateMilestoneInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Price       *Amount    `json:"price"`
	Deadline    *time.Time `json:"deadline"`
	IsVisible   *bool      `json:"isVisible"`
}

// Create appends a milestone to the project. It is visible by default.
func (s *MilestoneService) Create(ctx context.Context, projectID uuid.UUID, in CreateMilestoneInput) (*model.Milestone, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}
	if err := in.Price.check("price"); err != nil {
		return nil, err
	}

	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, classify(err, "Failed to load project")
	}
	if !exists {
		return nil, apperr.NotFound("Project not found")
	}

	visible := true
	if in.IsVisible != nil {
		visible = *in.IsVisible
	}
	milestone := &model.Milestone{
		ProjectID:   projectID,
		Title:       title,
		Description: in.Description,
		Price:       in.Price.Float(),
		Deadline:    in.Deadline,
		IsVisible:   visible,
	}
	if err := s.milestones.Append(ctx, milestone); err != nil {
		return nil, classify(err, "Failed to create milestone")
	}
	return milestone, nil
}

func (s *MilestoneService) Get(ctx context.Context, id uuid.UUID) (*model.Milestone, error) {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "Failed to load milestone")
	}
	return m, nil
}

// List returns the project's milestones in order, with tasks. visibleOnly
// is set for clients.
func (s *MilestoneService) List(ctx context.Context, projectID uuid.UUID, visibleOnly bool) ([]model.Milestone, error) {
	milestones, err := s.milestones.ListByProject(ctx, projectID, visibleOnly)
	if err != nil {
		return nil, classify(err, "Failed to list milestones")
	}
	return milestones, nil
}

// Reorder gives each milestone its index in orderedIDs, all or nothing.
func (s *MilestoneService) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) ([]model.Milestone, error) {
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, classify(err, "Failed to load project")
	}
	if !exists {
		return nil, apperr.NotFound("Project not found")
	}

	if err := s.milestones.Reorder(ctx, projectID, orderedIDs); err != nil {
		return nil, classify(err, "Failed to reorder milestones")
	}
	return s.List(ctx, projectID, false)
}

type UpdateMilestoneInput struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Price       Optional[Amount]    `json:"price"`
	Deadline    Optional[time.Time] `json:"deadline"`
	IsVisible   Optional[bool]      `json:"isVisible"`
}

func (in UpdateMilestoneInput) fields() (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if in.Title.Set {
		if in.Title.Value == nil || strings.TrimSpace(*in.Title.Value) == "" {
			return nil, apperr.Validation("title must not be empty")
		}
		fields["title"] = strings.TrimSpace(*in.Title.Value)
	}
	if in.Description.Set {
		fields["description"] = in.Description.Value
	}
	if in.Price.Set {
		if err := in.Price.Value.check("price"); err != nil {
			return nil, err
		}
		fields["price"] = in.Price.Value.Float()
	}
	if in.Deadline.Set {
		fields["deadline"] = in.Deadline.Value
	}
	if in.IsVisible.Set {
		if in.IsVisible.Value == nil {
			return nil, apperr.Validation("isVisible must be true or false")
		}
		fields["is_visible"] = *in.IsVisible.Value
	}
	return fields, nil
}

// Update applies the fields present in the request.
func (s *MilestoneService) Update(ctx context.Context, id uuid.UUID, in UpdateMilestoneInput) (*model.Milestone, error) {
	fields, err := in.fields()
	if err != nil {
		return nil, err
	}
	if _, err := s.milestones.GetByID(ctx, id); err != nil {
		return nil, classify(err, "Failed to load milestone")
	}
	if err := s.milestones.Update(ctx, id, fields); err != nil {
		return nil, classify(err, "Failed to update milestone")
	}
	return s.Get(ctx, id)
}

// Delete removes the milestone together with its tasks.
func (s *MilestoneService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.milestones.Delete(ctx, id); err != nil {
		return classify(err, "Failed to delete milestone")
	}
	s.log.Info("milestone deleted", zap.String("milestone_id", id.String()))
	return nil
}
