package errors

import "fmt"

// Error codes for the application
var (
	ErrFileNotFound     = fmt.Errorf("FILE_NOT_FOUND")
	ErrPathSecurity     = fmt.Errorf("PATH_SECURITY")
	ErrResourceLimit    = fmt.Errorf("RESOURCE_LIMIT")
	ErrPermissionDenied = fmt.Errorf("PERMISSION_DENIED")
	ErrReadFailed       = fmt.Errorf("READ_FAILED")
	ErrContainerRead    = fmt.Errorf("READ_CONTAINER")
	ErrInvalidCatalog   = fmt.Errorf("INVALID_CATALOG")
)

// ReadError is returned when a license file cannot be read during a search.
// It is fatal for the request that triggered it.
type ReadError struct {
	Entry string
	Path  string
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read %q (%s): %v", e.Entry, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ValidationError wraps validation errors
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s (value: %v): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
