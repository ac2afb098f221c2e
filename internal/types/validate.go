//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared by all response types; validator.Validate caches struct metadata
// and is safe for concurrent use.
var validate = validator.New()

// Validatable is implemented by decoded payloads that carry field rules.
type Validatable interface {
	Validate() error
}

// ValidateSlice validates each element of a list response, e.g. []SimilarJob.
func ValidateSlice[T any](items []T) error {
	return validate.Var(items, "dive")
}
