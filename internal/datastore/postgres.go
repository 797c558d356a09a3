package datastore

import (
	"context"
	stdErrors "errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/cmdutil"
	"github.com/lepinkainen/hondana/internal/errors"
)

const pgUniqueViolation = "23505"

// PostgresStore implements BookStore on a pgx connection pool.
type PostgresStore struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPostgresStore connects to dsn and verifies the connection.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewPostgresStoreFromPool(pool), nil
}

// NewPostgresStoreFromPool wraps an existing pool.
func NewPostgresStoreFromPool(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db:  pool,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) ExistsAny(ctx context.Context, isbns []string) (map[string]struct{}, error) {
	found := make(map[string]struct{})
	if len(isbns) == 0 {
		return found, nil
	}

	rows, err := s.db.Query(ctx, "SELECT isbn FROM "+booksTable+" WHERE isbn = ANY($1)", isbns)
	if err != nil {
		return nil, fmt.Errorf("query existing books: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var isbn string
		if err := rows.Scan(&isbn); err != nil {
			return nil, fmt.Errorf("scan isbn: %w", err)
		}
		found[isbn] = struct{}{}
	}
	return found, rows.Err()
}

func (s *PostgresStore) Create(ctx context.Context, rec *book.Record) (*book.Record, error) {
	out := stamp(rec, s.now())
	record := recordColumns(out, cmdutil.StructToMapOptions{KeepTime: true})

	columns := slices.Sorted(maps.Keys(record))
	placeholders := make([]string, len(columns))
	values := make([]any, len(columns))
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		values[i] = record[col]
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		booksTable,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := s.db.Exec(ctx, query, values...); err != nil {
		var pgErr *pgconn.PgError
		if stdErrors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, errors.NewPersistenceConflictError(rec.ISBN, err)
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
