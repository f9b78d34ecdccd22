package handler

import (
	"net/http"
	"strings"

	"paxala/internal/model"
	"paxala/internal/repository"
	"paxala/internal/service"

	"github.com/gin-gonic/gin"
)

type InquiryHandler struct {
	inquiries *service.InquiryService
}

func NewInquiryHandler(inquiries *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

type InquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// Create stores a contact-form message and notifies the studio inbox.
// @Summary  Send inquiry
// @Tags     Inquiries
// @Accept   json
// @Produce  json
// @Param    request body InquiryRequest true "Inquiry"
// @Success  201 {object} model.ContactInquiry
// @Failure  400 {object} map[string]string
// @Router   /inquiries [post]
func (h *InquiryHandler) Create(c *gin.Context) {
	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	inquiry, err := h.inquiries.Create(c.Request.Context(), service.CreateInquiryInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

func (h *InquiryHandler) List(c *gin.Context) {
	filter, err := repository.InquiryFilterFromQuery(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	inquiries, err := h.inquiries.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	inquiry, err := h.inquiries.UpdateStatus(c.Request.Context(), id, model.InquiryStatus(strings.ToUpper(req.Status)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}
