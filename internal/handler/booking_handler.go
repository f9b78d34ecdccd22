package handler

import (
	"net/http"
	"strings"

	"paxala/internal/i18n"
	"paxala/internal/model"
	"paxala/internal/repository"
	"paxala/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type BookingRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Service  string `json:"service" binding:"required"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	TimeSlot string `json:"timeSlot" binding:"required,timeslot"`
	Notes    string `json:"notes" binding:"max=2000"`
	Locale   string `json:"locale" binding:"omitempty,locale"`
}

// Create books a studio session. A slot held by a pending or confirmed
// booking is refused with 409.
// @Summary  Book a session
// @Tags     Bookings
// @Accept   json
// @Produce  json
// @Param    request body BookingRequest true "Booking"
// @Success  201 {object} model.Booking
// @Failure  400 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if l, ok := i18n.Parse(req.Locale); ok {
		ctx = i18n.WithLocale(ctx, l)
	}
	booking, err := h.bookings.Create(ctx, service.CreateBookingInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Service:  req.Service,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// Availability lists the free slots of ?date=YYYY-MM-DD.
// @Summary  Free slots
// @Tags     Bookings
// @Produce  json
// @Param    date query string true "Date (YYYY-MM-DD)"
// @Success  200 {object} map[string]interface{}
// @Router   /bookings/availability [get]
func (h *BookingHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.bookings.Availability(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

func (h *BookingHandler) List(c *gin.Context) {
	filter, err := repository.BookingFilterFromQuery(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	bookings, err := h.bookings.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status := model.BookingStatus(strings.ToUpper(req.Status))
	booking, err := h.bookings.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
