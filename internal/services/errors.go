// Package services holds the fake API's business operations over the
// database: stock movements, menu persistence and the menu workflow.
package services

import (
	"errors"
	"strings"

	"github.com/diewo77/stockchef/validation"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrStockInsufficient = errors.New("stock insuffisant")
	ErrNotEditable       = errors.New("menu is not editable")
)

// ValidationError carries the violations of a rejected payload.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return "invalid payload: " + strings.Join(e.Violations.Codes(), ", ")
}

func invalid(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}
