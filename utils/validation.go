// utils/validation.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	return phonePattern.MatchString(cleaned)
}

// ValidClock reports whether s is a zero-padded 24h HH:MM time. Run-of-show
// ordering compares these strings lexicographically.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// RegisterValidators adds the "clock" binding tag to gin's validator.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || ValidClock(s)
	})
}
