package importer

import (
	"context"
	"fmt"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/errors"
	"github.com/lepinkainen/hondana/internal/isbn"
)

// SaveOne imports a single ISBN without consulting the store first; an
// already stored ISBN surfaces as a PersistenceConflictError from the store.
func (imp *Importer) SaveOne(ctx context.Context, raw string) (*book.Record, error) {
	isbn13, err := isbn.Parse(raw)
	if err != nil {
		return nil, err
	}

	doc, err := imp.metadata.FetchOne(ctx, isbn13)
	if err != nil {
		if errors.IsRequestFailedError(err) {
			return nil, err
		}
		return nil, errors.NewRequestFailedError("metadata", err)
	}
	if doc == nil {
		return nil, errors.NewRequestFailedError("metadata", fmt.Errorf("%w: %s", book.ErrBookNotFound, isbn13))
	}
	if _, ok := doc.Product(); !ok {
		return nil, errors.NewMissingMetadataError(isbn13)
	}

	hasCover := imp.images.CheckOne(ctx, isbn13)

	rec, err := imp.extractor.Extract(doc, isbn13, imp.imageURL(isbn13, hasCover))
	if err != nil {
		return nil, err
	}

	saved, err := imp.store.Create(ctx, &rec)
	if err != nil {
		return nil, err
	}

	if imp.onSaved != nil {
		imp.onSaved(saved)
	}
	return saved, nil
}
