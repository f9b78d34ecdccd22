package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"paxala/internal/access"
	"paxala/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProjectHandler struct {
	projects *service.ProjectService
	payments *service.PaymentService
	guard    *Guard
}

func NewProjectHandler(projects *service.ProjectService, payments *service.PaymentService, guard *Guard) *ProjectHandler {
	return &ProjectHandler{projects: projects, payments: payments, guard: guard}
}

// List returns the projects the caller can see.
// @Summary  List projects
// @Tags     Projects
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} model.Project
// @Router   /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projects, err := h.projects.ListFor(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Get returns one project with its client, staff and contacts.
// @Summary  Get project
// @Tags     Projects
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Project ID"
// @Success  200 {object} model.Project
// @Failure  403 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, _, ok := h.guard.Project(c, id, access.ViewProject); !ok {
		return
	}
	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := h.projects.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type idsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// SetStaff replaces the project's staff.
func (h *ProjectHandler) SetStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := h.projects.SetStaff(c.Request.Context(), id, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// SetContacts replaces the project's client contacts.
func (h *ProjectHandler) SetContacts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := h.projects.SetContacts(c.Request.Context(), id, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// PaymentSummary totals milestone payments of the project.
// @Summary  Payment summary
// @Tags     Payments
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Project ID"
// @Success  200 {object} model.PaymentSummary
// @Router   /projects/{id}/payments/summary [get]
func (h *ProjectHandler) PaymentSummary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, _, ok := h.guard.Project(c, id, access.UpdateMilestones); !ok {
		return
	}
	summary, err := h.payments.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportPayments downloads the payment report as XLSX.
func (h *ProjectHandler) ExportPayments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, _, ok := h.guard.Project(c, id, access.UpdateMilestones); !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.payments.Export(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("payments-%s-%s.xlsx", id.String()[:8], time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

type ContactHandler struct {
	contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Create(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.CreateContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	contact, err := h.contacts.Create(c.Request.Context(), clientID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) List(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contacts, err := h.contacts.List(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}
