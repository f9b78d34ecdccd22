// Package service holds the business rules of the studio portal. Every
// error it returns is an *apperr.Error.
package service

import (
	"errors"

	"paxala/internal/apperr"
	"paxala/internal/repository"

	"gorm.io/gorm"
)

var notFoundMessages = []struct {
	err error
	msg string
}{
	{repository.ErrProjectNotFound, "Project not found"},
	{repository.ErrMilestoneNotFound, "Milestone not found"},
	{repository.ErrTaskNotFound, "Task not found"},
	{repository.ErrCommentNotFound, "Comment not found"},
	{repository.ErrContactNotFound, "Contact not found"},
	{repository.ErrBookingNotFound, "Booking not found"},
	{repository.ErrInquiryNotFound, "Inquiry not found"},
	{repository.ErrPostNotFound, "Post not found"},
	{repository.ErrPortfolioNotFound, "Portfolio item not found"},
}

// classify maps repository errors onto apperr kinds. msg describes the
// failed operation for internal errors.
func classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			return apperr.NotFound(nf.msg)
		}
	}
	switch {
	case errors.Is(err, repository.ErrMilestoneSetMismatch):
		return apperr.Validation("milestoneIds must list every milestone of the project exactly once")
	case errors.Is(err, repository.ErrSlotTaken):
		return apperr.Conflict("This time slot is already booked")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("A record with the same unique value already exists")
	}
	return apperr.Internal(msg, err)
}
