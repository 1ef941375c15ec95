package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("slotdate", validateSlotDate)
	validate.RegisterValidation("slottime", validateSlotTime)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidSlotDate reports whether date can be used as a key under slots_booked.
// Keys become mongo field paths, so dots and a leading dollar sign are rejected.
func IsValidSlotDate(date string) bool {
	if strings.TrimSpace(date) == "" {
		return false
	}
	return !strings.Contains(date, ".") && !strings.HasPrefix(date, "$")
}

func IsValidSlotTime(slotTime string) bool {
	return strings.TrimSpace(slotTime) != ""
}

func validateSlotDate(fl validator.FieldLevel) bool {
	return IsValidSlotDate(fl.Field().String())
}

func validateSlotTime(fl validator.FieldLevel) bool {
	return IsValidSlotTime(fl.Field().String())
}
