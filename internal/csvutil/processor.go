package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrSkipRecord can be returned by a parser to drop a record silently.
var ErrSkipRecord = errors.New("skip record")

// ErrEmptyFile is returned by ProcessCSV for a zero-byte file.
var ErrEmptyFile = errors.New("CSV file is empty")

// ProcessorOptions configures CSV processing behavior.
type ProcessorOptions struct {
	// FieldsPerRecord sets the expected number of fields per record.
	// If 0, it's set to the number of fields in the first record; a negative
	// value allows a different count on every line.
	FieldsPerRecord int

	// SkipHeader drops the first record.
	SkipHeader bool

	// SkipInvalid controls whether to skip invalid records or return an error.
	SkipInvalid bool
}

// ProcessCSV reads a CSV file and parses each record into type T.
// The parser function converts a CSV record ([]string) into the target type.
// Returns a slice of parsed items or an error.
func ProcessCSV[T any](filename string, parser func([]string) (T, error), opts ProcessorOptions) ([]T, error) {
	csvFile, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = csvFile.Close() }()

	fi, err := csvFile.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat CSV file: %w", err)
	}
	if fi.Size() == 0 {
		return nil, ErrEmptyFile
	}

	return ProcessReader(csvFile, parser, opts)
}

// ProcessReader is ProcessCSV over an already open reader.
func ProcessReader[T any](r io.Reader, parser func([]string) (T, error), opts ProcessorOptions) ([]T, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = opts.FieldsPerRecord

	if opts.SkipHeader {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
	}

	var items []T

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Error reading record", "error", err)
			continue
		}

		item, err := parser(record)
		if errors.Is(err, ErrSkipRecord) {
			continue
		}
		if err != nil {
			if opts.SkipInvalid {
				slog.Warn("Skipping invalid record", "error", err)
				continue
			}
			return nil, fmt.Errorf("invalid record: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
