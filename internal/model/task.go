package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskSubmitted  TaskStatus = "SUBMITTED"
	TaskApproved   TaskStatus = "APPROVED"
	TaskRejected   TaskStatus = "REJECTED"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskSubmitted, TaskApproved, TaskRejected:
		return true
	}
	return false
}

// TaskTransitions is the canonical review flow. Staff may still move a task
// outside of it; see service.TaskService.UpdateStatus.
var TaskTransitions = map[TaskStatus][]TaskStatus{
	TaskTodo:       {TaskInProgress},
	TaskInProgress: {TaskTodo, TaskSubmitted},
	TaskSubmitted:  {TaskApproved, TaskRejected, TaskInProgress},
	TaskRejected:   {TaskInProgress, TaskSubmitted},
	TaskApproved:   {},
}

func IsCanonicalTransition(from, to TaskStatus) bool {
	if from == to {
		return true
	}
	for _, next := range TaskTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	MilestoneID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"milestoneId"`
	Title           string       `gorm:"not null" json:"title"`
	Description     *string      `gorm:"type:text" json:"description,omitempty"`
	Status          TaskStatus   `gorm:"type:varchar(16);not null;index" json:"status"`
	Priority        TaskPriority `gorm:"type:varchar(16);not null" json:"priority"`
	DueDate         *time.Time   `json:"dueDate,omitempty"`
	IsVisible       bool         `gorm:"not null" json:"isVisible"`
	AssigneeID      *uuid.UUID   `gorm:"type:uuid;index" json:"assigneeId"`
	CreatedByID     *uuid.UUID   `gorm:"type:uuid" json:"createdById,omitempty"`
	RejectionReason *string      `gorm:"type:text" json:"rejectionReason"`
	SubmittedAt     *time.Time   `json:"submittedAt"`
	ApprovedAt      *time.Time   `json:"approvedAt"`
	ApprovedByID    *uuid.UUID   `gorm:"type:uuid" json:"approvedById"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`

	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return nil
}
