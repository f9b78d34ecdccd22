package handler

import (
	"regexp"

	"paxala/internal/i18n"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var timeSlotRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// RegisterValidators adds the custom binding tags used by request structs:
// timeslot (HH:MM) and locale (en, ar, he).
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return timeSlotRe.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		_, ok := i18n.Parse(fl.Field().String())
		return ok
	})
}
