package importer

import (
	"context"
	"fmt"
)

// FilterExisting drops the ISBNs the store already has. The store is queried
// batchSize identifiers at a time; input order is kept and repeated
// identifiers are not collapsed. A lookup error aborts the filter.
func FilterExisting(ctx context.Context, lookup ExistenceChecker, isbns []string, batchSize int) ([]string, int, error) {
	if batchSize <= 0 {
		batchSize = DefaultLookupBatchSize
	}

	fresh := make([]string, 0, len(isbns))
	skipped := 0

	for start := 0; start < len(isbns); start += batchSize {
		group := isbns[start:min(start+batchSize, len(isbns))]

		existing, err := lookup.ExistsAny(ctx, group)
		if err != nil {
			return nil, 0, fmt.Errorf("checking stored books: %w", err)
		}

		for _, isbn := range group {
			if _, ok := existing[isbn]; ok {
				skipped++
				continue
			}
			fresh = append(fresh, isbn)
		}
	}

	return fresh, skipped, nil
}
