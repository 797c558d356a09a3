package importer

import (
	"context"
	"fmt"
	"sync"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/errors"
	"github.com/lepinkainen/hondana/internal/onix"
)

// fakeMetadata answers with one document per requested ISBN unless told otherwise.
type fakeMetadata struct {
	docs     map[string]*onix.Document
	fail     map[int]error // keyed by call number, starting at 1
	reorder  func([]*onix.Document) []*onix.Document
	requests [][]string
}

func (f *fakeMetadata) FetchBatch(_ context.Context, isbns []string) ([]*onix.Document, error) {
	f.requests = append(f.requests, append([]string(nil), isbns...))
	if err, ok := f.fail[len(f.requests)]; ok {
		return nil, err
	}

	docs := make([]*onix.Document, len(isbns))
	for i, isbn := range isbns {
		docs[i] = f.docs[isbn]
	}
	if f.reorder != nil {
		docs = f.reorder(docs)
	}
	return docs, nil
}

func (f *fakeMetadata) FetchOne(ctx context.Context, isbn string) (*onix.Document, error) {
	docs, err := f.FetchBatch(ctx, []string{isbn})
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

type fakeProbe struct {
	mu     sync.Mutex
	covers map[string]bool
	probed []string
}

func (f *fakeProbe) URL(isbn string) string {
	return "https://thumb.test/thumbnail/" + isbn + ".jpg"
}

func (f *fakeProbe) CheckOne(_ context.Context, isbn string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probed = append(f.probed, isbn)
	return f.covers[isbn]
}

func (f *fakeProbe) CheckAll(ctx context.Context, isbns []string) map[string]bool {
	out := make(map[string]bool, len(isbns))
	for _, isbn := range isbns {
		out[isbn] = f.CheckOne(ctx, isbn)
	}
	return out
}

type fakeStore struct {
	existing  map[string]bool
	saved     []*book.Record
	lookups   [][]string
	lookupErr error
	createErr map[string]error
}

func newFakeStore(existing ...string) *fakeStore {
	s := &fakeStore{existing: make(map[string]bool)}
	for _, isbn := range existing {
		s.existing[isbn] = true
	}
	return s
}

func (s *fakeStore) ExistsAny(_ context.Context, isbns []string) (map[string]struct{}, error) {
	s.lookups = append(s.lookups, append([]string(nil), isbns...))
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	found := make(map[string]struct{})
	for _, isbn := range isbns {
		if s.existing[isbn] {
			found[isbn] = struct{}{}
		}
	}
	return found, nil
}

func (s *fakeStore) Create(_ context.Context, rec *book.Record) (*book.Record, error) {
	if err, ok := s.createErr[rec.ISBN]; ok {
		return nil, err
	}
	if s.existing[rec.ISBN] {
		return nil, errors.NewPersistenceConflictError(rec.ISBN, nil)
	}
	s.existing[rec.ISBN] = true
	out := *rec
	s.saved = append(s.saved, &out)
	return &out, nil
}

// titledDoc is a document whose title and summary echo isbn.
func titledDoc(isbn string) *onix.Document {
	doc, err := onix.ParseDocument(fmt.Appendf(nil,
		`{"onix": {"DescriptiveDetail": {"TitleDetail": {"TitleElement": {"TitleText": {"content": "title-%s"}}}}}, "summary": {"isbn": %q}}`,
		isbn, isbn))
	if err != nil {
		panic(err)
	}
	return doc
}

func docsFor(isbns ...string) map[string]*onix.Document {
	docs := make(map[string]*onix.Document, len(isbns))
	for _, isbn := range isbns {
		docs[isbn] = titledDoc(isbn)
	}
	return docs
}
