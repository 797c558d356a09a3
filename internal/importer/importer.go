// Package importer runs the ISBN import pipeline: dedup against the store,
// fetch metadata in chunks, probe covers, extract and save records.
package importer

import (
	"context"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/onix"
)

const (
	DefaultChunkSize       = 100
	DefaultLookupBatchSize = 1000
)

// MetadataClient looks up bibliographic documents by ISBN.
type MetadataClient interface {
	FetchBatch(ctx context.Context, isbns []string) ([]*onix.Document, error)
	FetchOne(ctx context.Context, isbn string) (*onix.Document, error)
}

// ImageProbe checks whether a cover image exists.
type ImageProbe interface {
	URL(isbn string) string
	CheckOne(ctx context.Context, isbn string) bool
	CheckAll(ctx context.Context, isbns []string) map[string]bool
}

// ExistenceChecker reports which ISBNs are already stored.
type ExistenceChecker interface {
	ExistsAny(ctx context.Context, isbns []string) (map[string]struct{}, error)
}

// BookStore is the part of the datastore the importer writes to.
type BookStore interface {
	ExistenceChecker
	Create(ctx context.Context, rec *book.Record) (*book.Record, error)
}

// Importer wires the collaborators of one import run.
type Importer struct {
	metadata  MetadataClient
	images    ImageProbe
	store     BookStore
	extractor onix.Extractor

	chunkSize       int
	lookupBatchSize int
	onSaved         func(*book.Record)
}

// New creates an Importer with the default chunk sizes and extractor.
func New(metadata MetadataClient, images ImageProbe, store BookStore, opts ...Option) *Importer {
	imp := &Importer{
		metadata:        metadata,
		images:          images,
		store:           store,
		extractor:       onix.NewExtractor(),
		chunkSize:       DefaultChunkSize,
		lookupBatchSize: DefaultLookupBatchSize,
	}

	for _, opt := range opts {
		opt(imp)
	}

	return imp
}

// Option is a functional option for configuring the Importer.
type Option func(*Importer)

// WithChunkSize sets how many ISBNs go into one metadata request.
func WithChunkSize(n int) Option {
	return func(imp *Importer) {
		if n > 0 {
			imp.chunkSize = n
		}
	}
}

// WithLookupBatchSize sets how many ISBNs are checked against the store at once.
func WithLookupBatchSize(n int) Option {
	return func(imp *Importer) {
		if n > 0 {
			imp.lookupBatchSize = n
		}
	}
}

// WithExtractor replaces the default extractor (defaults and link hosts).
func WithExtractor(e onix.Extractor) Option {
	return func(imp *Importer) {
		imp.extractor = e
	}
}

// WithOnSaved registers a callback invoked with every stored record.
func WithOnSaved(fn func(*book.Record)) Option {
	return func(imp *Importer) {
		imp.onSaved = fn
	}
}

func (imp *Importer) imageURL(isbn string, found bool) string {
	if found {
		return imp.images.URL(isbn)
	}
	return imp.extractor.Defaults.NoImage
}
