package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the root of every rejected-input error.
	ErrValidation = errors.New("Validation failed")

	ErrMissingRequiredField = fmt.Errorf("%w: missing required field", ErrValidation)
	ErrNoFieldsToUpdate     = fmt.Errorf("%w: no valid fields to update", ErrValidation)
	ErrUnknownReportType    = fmt.Errorf("%w: invalid report type", ErrValidation)
	ErrInvalidDateRange     = fmt.Errorf("%w: invalid date range", ErrValidation)
	ErrMissingColumn        = fmt.Errorf("%w: missing required column", ErrValidation)
	ErrInvalidField         = fmt.Errorf("%w: invalid field value", ErrValidation)

	ErrRecordNotFound    = errors.New("Site not found")
	ErrDuplicateSiteCode = errors.New("Site ID already exists")
)

// ValidationError names the input that was rejected. Kind is one of the
// validation sentinels above.
type ValidationError struct {
	Kind   error
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	case e.Kind == ErrMissingRequiredField:
		return "Missing required field: " + e.Field
	case e.Kind == ErrMissingColumn:
		return "Missing required column: " + e.Field
	case e.Field != "":
		return fmt.Sprintf("Invalid value for %s", e.Field)
	}
	return e.Kind.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// MissingField reports a mandatory field that was absent or null.
func MissingField(field string) error {
	return &ValidationError{Kind: ErrMissingRequiredField, Field: field}
}

// InvalidField reports a field whose value could not be used.
func InvalidField(field, reason string) error {
	return &ValidationError{Kind: ErrInvalidField, Field: field, Reason: reason}
}

// MissingColumns reports import header columns that are absent.
type MissingColumns struct {
	Columns []string
}

func (e *MissingColumns) Error() string {
	return fmt.Sprintf("Missing required columns: %v", e.Columns)
}

func (e *MissingColumns) Unwrap() error {
	return ErrMissingColumn
}

// DuplicateSiteError names the site code that already exists.
type DuplicateSiteError struct {
	SiteCode string
}

func (e *DuplicateSiteError) Error() string {
	return fmt.Sprintf("Site ID %s already exists", e.SiteCode)
}

func (e *DuplicateSiteError) Unwrap() error {
	return ErrDuplicateSiteCode
}

// PartialImportError reports a bulk import that stopped part way. Rows
// before Row are committed.
type PartialImportError struct {
	Inserted int
	Row      int
	SiteCode string
	Err      error
}

func (e *PartialImportError) Error() string {
	return fmt.Sprintf("import stopped at row %d (site %s) after %d inserted: %v", e.Row, e.SiteCode, e.Inserted, e.Err)
}

func (e *PartialImportError) Unwrap() error {
	return e.Err
}
