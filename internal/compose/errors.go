package compose

import (
	"fmt"

	"github.com/perfectlabs/deployergo/internal/fragment"
)

// MissingRequiredFieldError reports that composition could not resolve a
// required field after merging all fragments and running inference.
type MissingRequiredFieldError struct {
	Category fragment.Category
	Field    string
}

// Error implements the error interface.
func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("deployment is missing required field %q in category %q", e.Field, e.Category)
}

// ConflictError reports that two fragments in the same category supplied
// differing values for a field the category's policy declares strict
// (non-mergeable). Source names the annotation whose fragment triggered the
// conflict.
type ConflictError struct {
	Category fragment.Category
	Field    string
	Source   string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting values for strict field %q in category %q (second value from %s)", e.Field, e.Category, e.Source)
}
