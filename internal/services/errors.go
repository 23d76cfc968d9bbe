package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-hebergement/validation"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotEligible         = errors.New("document not eligible for reservation")
)

// MissingVariablesError lists the required variables left blank.
type MissingVariablesError struct {
	Template string
	Missing  []string
}

func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("template %s: missing required variables: %s", e.Template, strings.Join(e.Missing, ", "))
}

// NotEligibleError reports the related records a document type needs.
type NotEligibleError struct {
	Type    string
	Missing []string
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, strings.Join(e.Missing, ", "))
}

func (e *NotEligibleError) Is(target error) bool { return target == ErrNotEligible }

// ValidationError carries field violations of a template input.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, code := range e.Violations {
		fields = append(fields, f+"="+code)
	}
	return "invalid template input: " + strings.Join(fields, ", ")
}
