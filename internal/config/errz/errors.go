// Package errz provides shared error definitions for the config package and its subpackages.
package errz

import "errors"

// Top-level error categories
var (
	ErrIO         = errors.New("io error")
	ErrParse      = errors.New("parse error")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// Validation specific errors
var (
	ErrDuplicateID          = errors.New("duplicate ID")
	ErrEmptyID              = errors.New("empty ID")
	ErrInvalidReference     = errors.New("invalid reference")
	ErrInvalidValue         = errors.New("invalid value")
	ErrMissingRequiredField = errors.New("missing required field")
)

// Type specific errors
var (
	ErrInvalidAppType = errors.New("invalid app type")
)

// Reference specific errors
var (
	ErrServerNotFound   = errors.New("MCP server not found")
	ErrProviderNotFound = errors.New("provider not found")
)

// IsIO reports whether err belongs to the IO category.
func IsIO(err error) bool { return errors.Is(err, ErrIO) }

// IsParse reports whether err belongs to the parse category.
func IsParse(err error) bool { return errors.Is(err, ErrParse) }

// IsNotFound reports whether err is any of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrServerNotFound) ||
		errors.Is(err, ErrProviderNotFound)
}

// IsValidation reports whether err belongs to the validation category.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
