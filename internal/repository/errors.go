package repository

import "errors"

// Common repository errors
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrContactNotFound   = errors.New("contact not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInquiryNotFound   = errors.New("inquiry not found")
	ErrPostNotFound      = errors.New("blog post not found")
	ErrPortfolioNotFound = errors.New("portfolio item not found")

	// ErrMilestoneSetMismatch is returned by Reorder when the given IDs are
	// not exactly the project's milestones.
	ErrMilestoneSetMismatch = errors.New("milestone ids do not match project milestones")

	// ErrSlotTaken is returned when a booking would share its date and time
	// slot with a pending or confirmed booking.
	ErrSlotTaken = errors.New("time slot already booked")
)
