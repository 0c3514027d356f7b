package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSubmitLeadInput only checks that the three mandatory fields are
// present. There is deliberately no email-format or phone-format check: the
// landing page already shapes the values and the spreadsheet consumers
// expect them verbatim.
func ValidateSubmitLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FullName) == "" {
		errors = append(errors, ValidationError{"fullName", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	}

	return errors
}
