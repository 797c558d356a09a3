package datastore

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/cmdutil"
	"github.com/lepinkainen/hondana/internal/errors"
)

// Timestamps and publishing dates are stored as TEXT in these layouts.
const (
	sqliteTimeFormat = time.RFC3339
	sqliteDateFormat = time.DateOnly
)

// SQLiteStore implements BookStore for local SQLite storage
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// NewSQLiteStore opens the SQLite database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer; also keeps :memory: databases on one connection.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Migrate creates the books table if it doesn't exist
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// ExistsAny returns the ISBNs from isbns that already have a row
func (s *SQLiteStore) ExistsAny(ctx context.Context, isbns []string) (map[string]struct{}, error) {
	found := make(map[string]struct{})
	if len(isbns) == 0 {
		return found, nil
	}

	args := make([]any, len(isbns))
	for i, isbn := range isbns {
		args[i] = isbn
	}
	query := fmt.Sprintf(
		"SELECT isbn FROM %s WHERE isbn IN (%s)",
		booksTable,
		strings.TrimSuffix(strings.Repeat("?, ", len(isbns)), ", "),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var isbn string
		if err := rows.Scan(&isbn); err != nil {
			return nil, fmt.Errorf("failed to scan isbn: %w", err)
		}
		found[isbn] = struct{}{}
	}
	return found, rows.Err()
}

// Create inserts one record
func (s *SQLiteStore) Create(ctx context.Context, rec *book.Record) (*book.Record, error) {
	out := stamp(rec, s.now())
	record := recordColumns(out, cmdutil.StructToMapOptions{
		TimeFormat:       sqliteTimeFormat,
		FieldTimeFormats: map[string]string{"PublishedDate": sqliteDateFormat},
	})

	columns := slices.Sorted(maps.Keys(record))
	values := make([]any, len(columns))
	for i, col := range columns {
		values[i] = record[col]
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		booksTable,
		strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
	)

	if _, err := s.db.ExecContext(ctx, query, values...); err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, errors.NewPersistenceConflictError(rec.ISBN, err)
		}
		return nil, fmt.Errorf("failed to insert record: %w", err)
	}
	return out, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if stdErrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
