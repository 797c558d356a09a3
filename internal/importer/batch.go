package importer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/errors"
	"github.com/lepinkainen/hondana/internal/onix"
)

// ImportISBNs imports every ISBN not yet stored. Chunks are processed one at
// a time; per-item failures are counted in the Summary and never stop the
// run. The returned error is set only when the store lookup fails or ctx is
// cancelled between chunks.
func (imp *Importer) ImportISBNs(ctx context.Context, isbns []string) (Summary, error) {
	summary := Summary{Total: len(isbns)}

	fresh, skipped, err := FilterExisting(ctx, imp.store, isbns, imp.lookupBatchSize)
	if err != nil {
		return summary, err
	}
	summary.Skipped = skipped

	if skipped > 0 {
		slog.Info("Skipping books already stored", "count", skipped)
	}
	if len(fresh) == 0 {
		slog.Info("No new books to import", "total", len(isbns))
		return summary, nil
	}

	p := &progress{current: skipped, total: len(isbns)}

	for chunk := range slices.Chunk(fresh, imp.chunkSize) {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		imp.processChunk(ctx, chunk, &summary, p)
	}

	return summary, nil
}

func (imp *Importer) processChunk(ctx context.Context, chunk []string, summary *Summary, p *progress) {
	docs, err := imp.metadata.FetchBatch(ctx, chunk)
	if err != nil {
		if !errors.IsRequestFailedError(err) {
			err = errors.NewRequestFailedError("metadata", err)
		}
		slog.Error("Metadata request failed", "count", len(chunk), "error", err)
		for _, isbn := range chunk {
			summary.AddFailure(isbn, ReasonRequestFailed, err)
			slog.Warn("Book failed", "progress", p.next(), "isbn", isbn, "reason", ReasonRequestFailed)
		}
		return
	}

	covers := imp.images.CheckAll(ctx, chunk)

	for i, isbn := range chunk {
		var doc *onix.Document
		if i < len(docs) {
			doc = docs[i]
		}

		saved, reason, err := imp.saveDocument(ctx, doc, isbn, covers[isbn])
		if err != nil {
			summary.AddFailure(isbn, reason, err)
			slog.Warn("Book failed", "progress", p.next(), "isbn", isbn, "reason", reason, "error", err)
			continue
		}

		summary.Success++
		slog.Info("Book saved", "progress", p.next(), "isbn", isbn, "title", saved.Title)
	}
}

// saveDocument extracts and stores one item. On failure it returns the
// Summary reason with the error.
func (imp *Importer) saveDocument(ctx context.Context, doc *onix.Document, isbn string, hasCover bool) (*book.Record, string, error) {
	if doc == nil {
		return nil, ReasonNotFound, fmt.Errorf("%w: %s", book.ErrBookNotFound, isbn)
	}
	if echoed := doc.SummaryISBN(); echoed != "" && echoed != isbn {
		slog.Warn("Metadata ISBN does not match request", "isbn", isbn, "response_isbn", echoed)
	}

	rec, err := imp.extractor.Extract(doc, isbn, imp.imageURL(isbn, hasCover))
	if err != nil {
		if errors.IsMissingMetadataError(err) {
			return nil, ReasonMissingMetadata, err
		}
		return nil, ReasonInvalid, err
	}

	saved, err := imp.store.Create(ctx, &rec)
	if err != nil {
		if errors.IsPersistenceConflictError(err) {
			return nil, ReasonPersistenceConflict, err
		}
		return nil, ReasonStoreError, err
	}

	if imp.onSaved != nil {
		imp.onSaved(saved)
	}
	return saved, "", nil
}

// progress renders the [current/total] counter of a run.
type progress struct {
	current int
	total   int
}

func (p *progress) next() string {
	p.current++
	return fmt.Sprintf("[%d/%d]", p.current, p.total)
}
