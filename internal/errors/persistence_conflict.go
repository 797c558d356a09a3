package errors

import (
	stdErrors "errors"
	"fmt"
)

// PersistenceConflictError is returned by a store that refuses a record,
// usually because the ISBN is already stored.
type PersistenceConflictError struct {
	ISBN string
	Err  error
}

func (e *PersistenceConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("book %s already stored: %v", e.ISBN, e.Err)
	}
	return fmt.Sprintf("book %s already stored", e.ISBN)
}

func (e *PersistenceConflictError) Unwrap() error {
	return e.Err
}

// NewPersistenceConflictError wraps the driver error for isbn.
func NewPersistenceConflictError(isbn string, err error) *PersistenceConflictError {
	return &PersistenceConflictError{ISBN: isbn, Err: err}
}

// IsPersistenceConflictError reports whether err is a PersistenceConflictError (even when wrapped).
func IsPersistenceConflictError(err error) bool {
	var conflictErr *PersistenceConflictError
	return stdErrors.As(err, &conflictErr)
}
