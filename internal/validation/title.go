package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength        = 200
	MaxTemplateNameLength = 100
)

var ErrRequired = errors.New("is required")

// ValidateTitle validates a goal title
func ValidateTitle(title string) error {
	return validateText("title", title, MaxTitleLength)
}

// ValidateTemplateName validates an achievement template name
func ValidateTemplateName(name string) error {
	return validateText("name", name, MaxTemplateNameLength)
}

func validateText(field, value string, max int) error {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return fmt.Errorf("%s %w", field, ErrRequired)
	}

	if utf8.RuneCountInString(trimmed) > max {
		return fmt.Errorf("%s is too long (max %d characters)", field, max)
	}

	return nil
}
