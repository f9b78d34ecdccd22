package handler

import (
	"net/http"

	"paxala/internal/access"
	"paxala/internal/model"
	"paxala/internal/repository"
	"paxala/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks      *service.TaskService
	milestones *service.MilestoneService
	guard      *Guard
}

func NewTaskHandler(tasks *service.TaskService, milestones *service.MilestoneService, guard *Guard) *TaskHandler {
	return &TaskHandler{tasks: tasks, milestones: milestones, guard: guard}
}

// milestone resolves :id/:milestoneId, checking the milestone belongs to
// the project and capability holds on it.
func (h *TaskHandler) milestone(c *gin.Context, capability access.Capability) (*access.Principal, *model.Milestone, bool) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return nil, nil, false
	}
	milestoneID, ok := pathID(c, "milestoneId")
	if !ok {
		return nil, nil, false
	}
	p, _, ok := h.guard.Project(c, projectID, capability)
	if !ok {
		return nil, nil, false
	}
	m, err := h.milestones.Get(c.Request.Context(), milestoneID)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	if m.ProjectID != projectID || (visibleOnly(p) && !m.IsVisible) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		return nil, nil, false
	}
	return p, m, true
}

// task resolves the task behind :id and checks capability on its project.
func (h *TaskHandler) task(c *gin.Context, capability access.Capability) (*access.Principal, *model.Task, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, nil, false
	}
	task, projectID, err := h.tasks.Locate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	p, _, ok := h.guard.Project(c, projectID, capability)
	if !ok {
		return nil, nil, false
	}
	if visibleOnly(p) && !task.IsVisible {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return nil, nil, false
	}
	return p, task, true
}

// List returns the milestone's tasks, filtered by status, priority and
// assigneeId query parameters.
// @Summary  List tasks
// @Tags     Tasks
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Project ID"
// @Param    milestoneId path string true "Milestone ID"
// @Param    status query string false "Task status"
// @Param    priority query string false "Task priority"
// @Param    assigneeId query string false "Assignee ID"
// @Success  200 {array} model.Task
// @Router   /projects/{id}/milestones/{milestoneId}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	p, m, ok := h.milestone(c, access.ViewProject)
	if !ok {
		return
	}
	filter, err := repository.TaskFilterFromQuery(m.ID, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	filter.VisibleOnly = visibleOnly(p)

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Create adds a task to the milestone.
// @Summary  Create task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Project ID"
// @Param    milestoneId path string true "Milestone ID"
// @Success  201 {object} model.Task
// @Failure  400 {object} map[string]string
// @Router   /projects/{id}/milestones/{milestoneId}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	p, m, ok := h.milestone(c, access.ManageTasks)
	if !ok {
		return
	}
	var req service.CreateTaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), p.UserID, m.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Get(c *gin.Context) {
	_, task, ok := h.task(c, access.ViewProject)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	_, task, ok := h.task(c, access.ManageTasks)
	if !ok {
		return
	}
	var req service.UpdateTaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.tasks.Update(c.Request.Context(), task.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateStatus moves the task through the review flow.
// @Summary  Update task status
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Task ID"
// @Success  200 {object} model.Task
// @Router   /tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	p, task, ok := h.task(c, access.ManageTasks)
	if !ok {
		return
	}
	var req service.StatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.tasks.UpdateStatus(c.Request.Context(), p.UserID, task.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type assignRequest struct {
	AssigneeID *string `json:"assigneeId"`
}

// Assign sets or clears (null) the task's assignee.
// @Summary  Assign task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Task ID"
// @Success  200 {object} model.Task
// @Failure  400 {object} map[string]string
// @Router   /tasks/{id}/assign [put]
func (h *TaskHandler) Assign(c *gin.Context) {
	_, task, ok := h.task(c, access.ManageTasks)
	if !ok {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	assignee, err := optionalUUID(req.AssigneeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assigneeId format"})
		return
	}
	updated, err := h.tasks.Assign(c.Request.Context(), task.ID, assignee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	_, task, ok := h.task(c, access.ManageTasks)
	if !ok {
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), task.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
