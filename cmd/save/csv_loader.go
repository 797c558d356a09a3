package save

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/hondana/internal/csvutil"
	"github.com/lepinkainen/hondana/internal/importer"
	"github.com/lepinkainen/hondana/internal/isbn"
)

type isbnEntry struct {
	raw  string
	isbn string
	err  error
}

// loadISBNs reads the first column of every CSV row. Rows without any digits
// are skipped; rows whose digits are not a 13-digit ISBN are returned as
// failures instead. An empty file is an empty list.
func loadISBNs(path string) ([]string, []importer.Failure, error) {
	entries, err := csvutil.ProcessCSV(path, parseISBNRecord, csvutil.ProcessorOptions{FieldsPerRecord: -1})
	if errors.Is(err, csvutil.ErrEmptyFile) {
		slog.Warn("CSV file is empty", "file", path)
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read ISBN list: %w", err)
	}

	var (
		valid   []string
		invalid []importer.Failure
	)
	for _, e := range entries {
		if e.err != nil {
			slog.Warn("Invalid ISBN in CSV", "value", e.raw)
			invalid = append(invalid, importer.Failure{ISBN: e.raw, Reason: importer.ReasonInvalid, Detail: e.err.Error()})
			continue
		}
		valid = append(valid, e.isbn)
	}

	return valid, invalid, nil
}

func parseISBNRecord(record []string) (isbnEntry, error) {
	raw := strings.TrimSpace(record[0])
	if isbn.NormalizeDigits(raw) == "" {
		return isbnEntry{}, csvutil.ErrSkipRecord
	}

	normalized, err := isbn.Parse(raw)
	return isbnEntry{raw: raw, isbn: normalized, err: err}, nil
}
