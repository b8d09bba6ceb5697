package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrReportNotFound = fmt.Errorf("%w: report", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)
	ErrSheetNotFound  = fmt.Errorf("%w: sheet", ErrNotFound)

	// Validation errors
	ErrEmptySample    = errors.New("sample must be non-empty")
	ErrNonFinite      = errors.New("sample contains a non-finite value")
	ErrOutOfRange     = errors.New("sample value exceeds the supported magnitude")
	ErrNotNumeric     = errors.New("value is not numeric")
	ErrNoNumericData  = errors.New("no numeric data")
	ErrUnknownFormat  = errors.New("unsupported format")
	ErrUnknownPolicy  = errors.New("unknown bin skip policy")
	ErrPersistenceOff = errors.New("report persistence is not configured")

	// Conflict errors
	ErrDuplicateSample = errors.New("sample already stored")
)

// Error constructors with context
func NewNonFiniteError(index int, value float64) error {
	return fmt.Errorf("%w: %v at position %d", ErrNonFinite, value, index)
}

func NewNotNumericError(row int, column, cell string) error {
	return fmt.Errorf("%w: %q in column %s, row %d", ErrNotNumeric, cell, column, row)
}

func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
}

func NewReportNotFoundError(id ReportID) error {
	return fmt.Errorf("%w: %s", ErrReportNotFound, id)
}

func NewOutOfRangeError(index int, value float64) error {
	return fmt.Errorf("%w: %v at position %d", ErrOutOfRange, value, index)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateSample)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptySample) ||
		errors.Is(err, ErrNonFinite) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrNotNumeric) ||
		errors.Is(err, ErrNoNumericData)
}
