package save

import (
	stdErrors "errors"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/errors"
	"github.com/lepinkainen/hondana/internal/importer"
)

// failureReason maps a single-mode error to its Summary reason.
func failureReason(err error) string {
	switch {
	case stdErrors.Is(err, book.ErrInvalidISBN):
		return importer.ReasonInvalid
	case stdErrors.Is(err, book.ErrBookNotFound):
		return importer.ReasonNotFound
	case errors.IsRequestFailedError(err):
		return importer.ReasonRequestFailed
	case errors.IsMissingMetadataError(err):
		return importer.ReasonMissingMetadata
	case errors.IsPersistenceConflictError(err):
		return importer.ReasonPersistenceConflict
	}
	return importer.ReasonStoreError
}
