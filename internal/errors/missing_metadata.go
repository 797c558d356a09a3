package errors

import "errors"

// MissingMetadataError means the metadata service answered for an ISBN but the
// answer has no bibliographic payload.
type MissingMetadataError struct {
	ISBN string
}

func (e *MissingMetadataError) Error() string {
	return "no ONIX data for ISBN " + e.ISBN
}

// NewMissingMetadataError creates a MissingMetadataError for isbn.
func NewMissingMetadataError(isbn string) *MissingMetadataError {
	return &MissingMetadataError{ISBN: isbn}
}

// IsMissingMetadataError reports whether err is a MissingMetadataError (even when wrapped).
func IsMissingMetadataError(err error) bool {
	var missingErr *MissingMetadataError
	return errors.As(err, &missingErr)
}
