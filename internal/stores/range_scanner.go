package stores

import (
	"context"
	"fmt"

	"usage-analytics/internal/shared/docstores"
	"usage-analytics/internal/shared/loggers"
)

const (
	MinPageSize     = 2000
	MaxPageSize     = 10000
	DefaultPageSize = MaxPageSize
)

// RangeScanner reads every document of a kind whose numeric field lies in
// [startMillis, endMillis], following continuation cursors page by page.
// No ordering of the results is assumed. A failed page aborts the scan
// without retry.
//
//go:generate mockgen -source=range_scanner.go -destination=./mocks/range_scanner_mock.go -package=mocks
type RangeScanner interface {
	ScanKeys(ctx context.Context, kind, field string, startMillis, endMillis int64) ([]docstores.Key, error)
	ScanDocuments(ctx context.Context, kind, field string, startMillis, endMillis int64) ([]*docstores.Document, error)
}

type rangeScanner struct {
	docStore  docstores.DocStore
	namespace string
	pageSize  int
}

func NewRangeScanner(docStore docstores.DocStore, namespace string, pageSize int) RangeScanner {
	if pageSize < MinPageSize || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return &rangeScanner{docStore: docStore, namespace: namespace, pageSize: pageSize}
}

func (s *rangeScanner) ScanKeys(ctx context.Context, kind, field string, startMillis, endMillis int64) ([]docstores.Key, error) {
	var keys []docstores.Key
	err := s.scan(ctx, kind, field, startMillis, endMillis, true, func(doc *docstores.Document) {
		keys = append(keys, doc.Key)
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *rangeScanner) ScanDocuments(ctx context.Context, kind, field string, startMillis, endMillis int64) ([]*docstores.Document, error) {
	var docs []*docstores.Document
	err := s.scan(ctx, kind, field, startMillis, endMillis, false, func(doc *docstores.Document) {
		docs = append(docs, doc)
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *rangeScanner) scan(ctx context.Context, kind, field string, startMillis, endMillis int64, keysOnly bool, visit func(*docstores.Document)) error {
	logger := loggers.Ctx(ctx)

	base := docstores.NewQuery(s.namespace, kind).
		Filter(field, docstores.OpGreaterOrEqual, startMillis).
		Filter(field, docstores.OpLessOrEqual, endMillis).
		Limit(s.pageSize)
	if keysOnly {
		base = base.KeysOnly()
	}

	var cursor docstores.Cursor
	for page := 1; ; page++ {
		query := base
		if cursor != "" {
			query = query.Start(cursor)
		}
		result, err := s.docStore.Run(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to scan %s page %d: %w", kind, page, err)
		}
		for _, doc := range result.Documents {
			visit(doc)
		}
		logger.Debug().Int(loggers.FieldPage, page).Int(loggers.FieldCount, len(result.Documents)).Msgf("scanned %s page", kind)

		if result.MoreResults == docstores.NoMoreResults || len(result.Documents) == 0 {
			return nil
		}
		cursor = result.EndCursor
	}
}
