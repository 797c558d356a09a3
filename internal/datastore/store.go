// Package datastore persists book records in SQLite or PostgreSQL.
package datastore

import (
	"context"
	"fmt"
	"time"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/cmdutil"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const booksTable = "books"

// BookStore defines the persistence operations of the import pipeline.
type BookStore interface {
	// Migrate creates the books table and its indexes if they don't exist
	Migrate(ctx context.Context) error

	// ExistsAny returns the subset of isbns that are already stored
	ExistsAny(ctx context.Context, isbns []string) (map[string]struct{}, error)

	// Create inserts rec and returns it with its timestamps set. A duplicate
	// ISBN yields a PersistenceConflictError.
	Create(ctx context.Context, rec *book.Record) (*book.Record, error)

	// Close closes the connection to the data store
	Close() error
}

// Open connects to the store selected by driver and applies the schema.
func Open(ctx context.Context, driver, dsn string) (BookStore, error) {
	var (
		store BookStore
		err   error
	)

	switch driver {
	case DriverSQLite, "":
		store, err = NewSQLiteStore(dsn)
	case DriverPostgres:
		store, err = NewPostgresStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown datastore driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// recordColumns maps a record to column values keyed by column name.
func recordColumns(rec *book.Record, opts cmdutil.StructToMapOptions) map[string]any {
	opts.KeyOverrides = map[string]string{"ISBN10": "isbn_10"}
	return cmdutil.StructToMap(rec, opts)
}

// stamp returns a copy of rec with both timestamps set to now.
func stamp(rec *book.Record, now time.Time) *book.Record {
	out := *rec
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out
}
