// Package save implements the save command: import one ISBN, or every ISBN
// listed in a CSV file, into the configured datastore.
package save

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/config"
	"github.com/lepinkainen/hondana/internal/datastore"
	"github.com/lepinkainen/hondana/internal/fileutil"
	"github.com/lepinkainen/hondana/internal/importer"
	"github.com/lepinkainen/hondana/internal/onix"
	"github.com/lepinkainen/hondana/internal/openbd"
	"github.com/lepinkainen/hondana/internal/thumbnail"
)

// ErrNoInput is returned when neither an ISBN nor a CSV file is given.
var ErrNoInput = stdErrors.New("an ISBN argument or --csv file is required")

// Params holds the options of one save run.
type Params struct {
	ISBN       string
	CSVFile    string
	ChunkSize  int
	ReportFile string
	JSONOutput string
	Strict     bool
}

// openStore is replaced in tests.
var openStore = func(ctx context.Context) (datastore.BookStore, error) {
	return datastore.Open(ctx, config.DatastoreDriver, config.DatastoreDSN)
}

// RunWithParams executes a save run. In CSV mode per-book failures only make
// the run fail when Strict is set.
func RunWithParams(ctx context.Context, params Params) error {
	if params.ISBN == "" && params.CSVFile == "" {
		return ErrNoInput
	}
	if params.ISBN != "" && params.CSVFile != "" {
		slog.Warn("Both an ISBN and --csv given, importing the CSV file", "isbn", params.ISBN)
	}

	store, err := openStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	var saved []*book.Record
	imp := newImporter(store, params, importer.WithOnSaved(func(rec *book.Record) {
		saved = append(saved, rec)
	}))

	var summary importer.Summary
	if params.CSVFile != "" {
		summary, err = runBatch(ctx, imp, params.CSVFile)
	} else {
		summary, err = runSingle(ctx, imp, params.ISBN)
	}

	if params.ReportFile != "" {
		if _, werr := fileutil.WriteYAMLFile(summary, params.ReportFile, config.OverwriteFiles); werr != nil {
			slog.Error("Failed to write report", "error", werr)
		}
	}
	if params.JSONOutput != "" {
		if _, werr := fileutil.WriteJSONFile(saved, params.JSONOutput, config.OverwriteFiles); werr != nil {
			slog.Error("Failed to write JSON output", "error", werr)
		}
	}

	if err != nil {
		return err
	}
	if params.CSVFile != "" && params.Strict && summary.Failed > 0 {
		return fmt.Errorf("%d of %d books failed", summary.Failed, summary.Total)
	}
	return nil
}

func runBatch(ctx context.Context, imp *importer.Importer, csvFile string) (importer.Summary, error) {
	isbns, invalid, err := loadISBNs(csvFile)
	if err != nil {
		return importer.Summary{}, err
	}

	slog.Info("Importing books", "file", csvFile, "count", len(isbns)+len(invalid))

	summary, err := imp.ImportISBNs(ctx, isbns)
	summary.Merge(importer.Summary{Total: len(invalid), Failed: len(invalid), Failures: invalid})

	slog.Info("Import finished",
		"success", summary.Success,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"total", summary.Total,
	)
	return summary, err
}

func runSingle(ctx context.Context, imp *importer.Importer, isbn string) (importer.Summary, error) {
	summary := importer.Summary{Total: 1}

	rec, err := imp.SaveOne(ctx, isbn)
	if err != nil {
		summary.AddFailure(isbn, failureReason(err), err)
		slog.Error("Failed to save book", "isbn", isbn, "error", err)
		return summary, err
	}

	summary.Success = 1
	slog.Info("Book saved", "isbn", rec.ISBN, "title", rec.Title, "image", rec.ImageURL)
	return summary, nil
}

func newImporter(store importer.BookStore, params Params, opts ...importer.Option) *importer.Importer {
	extractor := onix.NewExtractor()
	if config.AmazonBaseURL != "" {
		extractor.Links.AmazonBaseURL = config.AmazonBaseURL
	}
	if config.HontoBaseURL != "" {
		extractor.Links.HontoBaseURL = config.HontoBaseURL
	}

	chunkSize := config.ChunkSize
	if params.ChunkSize > 0 {
		chunkSize = params.ChunkSize
	}

	base := []importer.Option{
		importer.WithChunkSize(chunkSize),
		importer.WithLookupBatchSize(config.LookupBatchSize),
		importer.WithExtractor(extractor),
	}

	return importer.New(
		openbd.NewClient(openbd.WithBaseURL(config.OpenBDBaseURL)),
		thumbnail.NewProbe(thumbnail.WithBaseURL(config.ThumbnailBaseURL)),
		store,
		append(base, opts...)...,
	)
}
