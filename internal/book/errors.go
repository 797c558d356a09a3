package book

import "errors"

var (
	// ErrInvalidISBN is returned when an identifier is not 13 ASCII digits.
	ErrInvalidISBN = errors.New("invalid ISBN")

	// ErrBookNotFound is returned when the metadata service has no entry for an ISBN.
	ErrBookNotFound = errors.New("book not found")
)
