package handler

import (
	"net/http"

	"paxala/internal/access"
	"paxala/internal/model"
	"paxala/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MilestoneHandler struct {
	milestones *service.MilestoneService
	payments   *service.PaymentService
	guard      *Guard
}

func NewMilestoneHandler(milestones *service.MilestoneService, payments *service.PaymentService, guard *Guard) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones, payments: payments, guard: guard}
}

// load fetches the milestone behind :id and checks capability on its
// project. Hidden milestones are reported missing to callers who only see
// visible ones.
func (h *MilestoneHandler) load(c *gin.Context, capability access.Capability) (*model.Milestone, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}
	m, err := h.milestones.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	p, _, ok := h.guard.Project(c, m.ProjectID, capability)
	if !ok {
		return nil, false
	}
	if visibleOnly(p) && !m.IsVisible {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		return nil, false
	}
	return m, true
}

func (h *MilestoneHandler) list(c *gin.Context, projectID uuid.UUID) {
	p, _, ok := h.guard.Project(c, projectID, access.ViewProject)
	if !ok {
		return
	}
	milestones, err := h.milestones.List(c.Request.Context(), projectID, visibleOnly(p))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestones)
}

// List returns a project's milestones in order, with their tasks.
// @Summary  List milestones
// @Tags     Milestones
// @Produce  json
// @Security BearerAuth
// @Param    projectId query string true "Project ID"
// @Success  200 {array} model.Milestone
// @Router   /milestones [get]
func (h *MilestoneHandler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.Query("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId query parameter is required"})
		return
	}
	h.list(c, projectID)
}

func (h *MilestoneHandler) ListForProject(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.list(c, projectID)
}

func (h *MilestoneHandler) Get(c *gin.Context) {
	m, ok := h.load(c, access.ViewProject)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MilestoneHandler) create(c *gin.Context, projectID uuid.UUID, in service.CreateMilestoneInput) {
	if _, _, ok := h.guard.Project(c, projectID, access.ManageMilestones); !ok {
		return
	}
	m, err := h.milestones.Create(c.Request.Context(), projectID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

type createMilestoneRequest struct {
	ProjectID uuid.UUID `json:"projectId" binding:"required"`
	service.CreateMilestoneInput
}

// Create appends a milestone to a project.
// @Summary  Create milestone
// @Tags     Milestones
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  201 {object} model.Milestone
// @Failure  400 {object} map[string]string
// @Router   /milestones [post]
func (h *MilestoneHandler) Create(c *gin.Context) {
	var req createMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.create(c, req.ProjectID, req.CreateMilestoneInput)
}

func (h *MilestoneHandler) CreateForProject(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.CreateMilestoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.create(c, projectID, req)
}

type reorderRequest struct {
	ProjectID    uuid.UUID   `json:"projectId" binding:"required"`
	MilestoneIDs []uuid.UUID `json:"milestoneIds" binding:"required"`
}

// Reorder sets the order of every milestone of a project.
// @Summary  Reorder milestones
// @Tags     Milestones
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} model.Milestone
// @Failure  400 {object} map[string]string
// @Router   /milestones/reorder [put]
func (h *MilestoneHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, _, ok := h.guard.Project(c, req.ProjectID, access.UpdateMilestones); !ok {
		return
	}
	milestones, err := h.milestones.Reorder(c.Request.Context(), req.ProjectID, req.MilestoneIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestones)
}

func (h *MilestoneHandler) Update(c *gin.Context) {
	m, ok := h.load(c, access.UpdateMilestones)
	if !ok {
		return
	}
	var req service.UpdateMilestoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.milestones.Update(c.Request.Context(), m.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MilestoneHandler) Delete(c *gin.Context) {
	m, ok := h.load(c, access.ManageMilestones)
	if !ok {
		return
	}
	if err := h.milestones.Delete(c.Request.Context(), m.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetPayment records the milestone's payment status.
// @Summary  Set payment status
// @Tags     Payments
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Milestone ID"
// @Success  200 {object} model.Milestone
// @Failure  400 {object} map[string]string
// @Router   /milestones/{id}/payment [put]
func (h *MilestoneHandler) SetPayment(c *gin.Context) {
	m, ok := h.load(c, access.UpdateMilestones)
	if !ok {
		return
	}
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.payments.SetPaymentStatus(c.Request.Context(), m.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
