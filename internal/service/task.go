package service

import (
	"context"
	"strings"
	"time"

	"paxala/internal/apperr"
	"paxala/internal/metrics"
	"paxala/internal/model"
	"paxala/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService struct {
	milestones *repository.MilestoneRepository
	tasks      *repository.TaskRepository
	users      *repository.UserRepository
	log        *zap.Logger
	strict     bool
	now        func() time.Time
}

// NewTaskService builds the task service. With strictTransitions set, status
// changes outside model.TaskTransitions are rejected instead of logged.
func NewTaskService(milestones *repository.MilestoneRepository, tasks *repository.TaskRepository, users *repository.UserRepository, log *zap.Logger, strictTransitions bool) *TaskService {
	return &TaskService{
		milestones: milestones,
		tasks:      tasks,
		users:      users,
		log:        log,
		strict:     strictTransitions,
		now:        time.Now,
	}
}

type CreateTaskInput struct {
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	Priority    model.TaskPriority `json:"priority"`
	Status      model.TaskStatus   `json:"status"`
	DueDate     *time.Time         `json:"dueDate"`
	IsVisible   *bool              `json:"isVisible"`
	AssigneeID  *uuid.UUID         `json:"assigneeId"`
}

// checkAssignee returns a validation error unless id names an ADMIN or
// STAFF user.
func (s *TaskService) checkAssignee(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	user, err := s.users.GetByID(ctx, *id)
	if err != nil {
		return classify(err, "Failed to load assignee")
	}
	if user == nil {
		return apperr.NotFound("Assignee not found")
	}
	if !user.Role.IsTeam() {
		return apperr.Validation("assignee must be an ADMIN or STAFF user")
	}
	return nil
}

// Locate returns the task and the project it belongs to.
func (s *TaskService) Locate(ctx context.Context, taskID uuid.UUID) (*model.Task, uuid.UUID, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, uuid.Nil, classify(err, "Failed to load task")
	}
	m, err := s.milestones.GetByID(ctx, task.MilestoneID)
	if err != nil {
		return nil, uuid.Nil, classify(err, "Failed to load milestone")
	}
	return task, m.ProjectID, nil
}

func (s *TaskService) Create(ctx context.Context, actorID uuid.UUID, milestoneID uuid.UUID, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, apperr.Validation("unknown task priority %q", in.Priority)
	}
	if in.Status == "" {
		in.Status = model.TaskTodo
	}
	if !in.Status.Valid() {
		return nil, apperr.Validation("unknown task status %q", in.Status)
	}

	if _, err := s.milestones.GetByID(ctx, milestoneID); err != nil {
		return nil, classify(err, "Failed to load milestone")
	}
	if err := s.checkAssignee(ctx, in.AssigneeID); err != nil {
		return nil, err
	}

	visible := true
	if in.IsVisible != nil {
		visible = *in.IsVisible
	}
	creator := actorID
	task := &model.Task{
		MilestoneID: milestoneID,
		Title:       title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		IsVisible:   visible,
		AssigneeID:  in.AssigneeID,
		CreatedByID: &creator,
	}
	applyStatus(task, in.Status, actorID, nil, s.now().UTC())

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, classify(err, "Failed to create task")
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "Failed to load task")
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, classify(err, "Failed to list tasks")
	}
	return tasks, nil
}

// Assign sets the task's assignee; nil clears it.
func (s *TaskService) Assign(ctx context.Context, taskID uuid.UUID, assigneeID *uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, classify(err, "Failed to load task")
	}
	if err := s.checkAssignee(ctx, assigneeID); err != nil {
		return nil, err
	}
	if err := s.tasks.AssignUser(ctx, taskID, assigneeID); err != nil {
		return nil, classify(err, "Failed to assign task")
	}
	task.AssigneeID = assigneeID
	return task, nil
}

// applyStatus sets status and derives the review metadata that goes with it.
func applyStatus(t *model.Task, status model.TaskStatus, actorID uuid.UUID, reason *string, now time.Time) {
	t.Status = status
	switch status {
	case model.TaskSubmitted:
		t.SubmittedAt = &now
	case model.TaskApproved:
		approver := actorID
		t.ApprovedAt = &now
		t.ApprovedByID = &approver
		t.RejectionReason = nil
	case model.TaskRejected:
		t.RejectionReason = reason
		t.ApprovedAt = nil
		t.ApprovedByID = nil
	case model.TaskTodo, model.TaskInProgress:
		t.ApprovedAt = nil
		t.ApprovedByID = nil
	}
}

type StatusInput struct {
	Status          model.TaskStatus `json:"status"`
	RejectionReason *string          `json:"rejectionReason"`
}

// UpdateStatus moves the task to a new status. Moves outside the review flow
// are logged, and refused only in strict mode.
func (s *TaskService) UpdateStatus(ctx context.Context, actorID, taskID uuid.UUID, in StatusInput) (*model.Task, error) {
	if !in.Status.Valid() {
		return nil, apperr.Validation("unknown task status %q", in.Status)
	}
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, classify(err, "Failed to load task")
	}

	from := task.Status
	canonical := model.IsCanonicalTransition(from, in.Status)
	if !canonical {
		if s.strict {
			return nil, apperr.Validation("cannot move task from %s to %s", from, in.Status)
		}
		s.log.Warn("task status change outside review flow",
			zap.String("task_id", taskID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(in.Status)),
			zap.String("actor_id", actorID.String()),
		)
	}

	var reason *string
	if in.RejectionReason != nil {
		trimmed := strings.TrimSpace(*in.RejectionReason)
		if trimmed != "" {
			reason = &trimmed
		}
	}
	applyStatus(task, in.Status, actorID, reason, s.now().UTC())

	err = s.tasks.Update(ctx, taskID, map[string]interface{}{
		"status":           task.Status,
		"submitted_at":     task.SubmittedAt,
		"approved_at":      task.ApprovedAt,
		"approved_by_id":   task.ApprovedByID,
		"rejection_reason": task.RejectionReason,
	})
	if err != nil {
		return nil, classify(err, "Failed to update task status")
	}

	metrics.RecordTaskStatusChange(string(in.Status), canonical)
	return task, nil
}

type UpdateTaskInput struct {
	Title       Optional[string]             `json:"title"`
	Description Optional[string]             `json:"description"`
	Priority    Optional[model.TaskPriority] `json:"priority"`
	DueDate     Optional[time.Time]          `json:"dueDate"`
	IsVisible   Optional[bool]               `json:"isVisible"`
}

// Update edits task details. Status and assignee have their own operations.
func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
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
	if in.Priority.Set {
		if in.Priority.Value == nil || !in.Priority.Value.Valid() {
			return nil, apperr.Validation("priority must be one of LOW, MEDIUM, HIGH, URGENT")
		}
		fields["priority"] = *in.Priority.Value
	}
	if in.DueDate.Set {
		fields["due_date"] = in.DueDate.Value
	}
	if in.IsVisible.Set {
		if in.IsVisible.Value == nil {
			return nil, apperr.Validation("isVisible must be true or false")
		}
		fields["is_visible"] = *in.IsVisible.Value
	}

	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, classify(err, "Failed to load task")
	}
	if err := s.tasks.Update(ctx, taskID, fields); err != nil {
		return nil, classify(err, "Failed to update task")
	}
	return s.Get(ctx, taskID)
}

func (s *TaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return classify(err, "Failed to delete task")
	}
	return nil
}
