package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/berryseed/327project-group10/internal/models"
)

// RegisterValidations installs the planner's custom tags on v.
//   - hhmm: "HH:mm" at minute precision
//   - hhmm15: "HH:mm" on the 15-minute grid
//   - weekday: a lowercase or capitalised English weekday name
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if len(raw) != 5 {
			return false
		}
		_, err := models.ParseClock(raw)
		return err == nil
	})
	_ = v.RegisterValidation("hhmm15", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if len(raw) != 5 {
			return false
		}
		minutes, err := models.ParseClock(raw)
		return err == nil && models.OnGrid(minutes)
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseWeekday(fl.Field().String())
		return ok
	})
}

// NewValidator returns a validator with the planner tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}
