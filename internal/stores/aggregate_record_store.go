package stores

import (
	"context"
	"errors"
	"fmt"

	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/docstores"
)

var (
	ErrAggregateRecordNotFound     = errors.New("aggregate record not found")
	ErrAggregateRecordAlreadyExist = errors.New("aggregate record already exists")
)

// AggregateRecordStore persists one record per (group, period key). Create is
// an atomic insert-if-absent: when two rollups race for the same period, one
// write lands and the other gets ErrAggregateRecordAlreadyExist.
//
//go:generate mockgen -source=aggregate_record_store.go -destination=./mocks/aggregate_record_store_mock.go -package=mocks
type AggregateRecordStore interface {
	Get(ctx context.Context, group models.AggregateGroup, key string) (*models.AggregateRecord, error)
	Create(ctx context.Context, record *models.AggregateRecord) error
	// ListByDay returns the group's records whose period start lies in [startMillis, endMillis].
	ListByDay(ctx context.Context, group models.AggregateGroup, startMillis, endMillis int64) ([]*models.AggregateRecord, error)
}

type aggregateRecordStore struct {
	docStore  docstores.DocStore
	scanner   RangeScanner
	namespace string
}

func NewAggregateRecordStore(docStore docstores.DocStore, scanner RangeScanner, namespace string) AggregateRecordStore {
	return &aggregateRecordStore{docStore: docStore, scanner: scanner, namespace: namespace}
}

func (s *aggregateRecordStore) Get(ctx context.Context, group models.AggregateGroup, key string) (*models.AggregateRecord, error) {
	doc, err := s.docStore.Get(ctx, docstores.NameKey(s.namespace, group.Name(), key))
	if err != nil {
		if errors.Is(err, docstores.ErrNotFound) {
			return nil, ErrAggregateRecordNotFound
		}
		return nil, fmt.Errorf("failed to get aggregate record: %w", err)
	}
	return toAggregateRecord(group, doc)
}

func (s *aggregateRecordStore) Create(ctx context.Context, record *models.AggregateRecord) error {
	doc := &docstores.Document{
		Key: docstores.NameKey(s.namespace, record.Group.Name(), record.Key),
		Properties: docstores.Properties{
			models.FieldDay:                  record.Day,
			record.Group.Scope.MetricField(): record.Count,
		},
	}
	if _, err := s.docStore.Create(ctx, doc); err != nil {
		if errors.Is(err, docstores.ErrAlreadyExists) {
			return ErrAggregateRecordAlreadyExist
		}
		return fmt.Errorf("failed to create aggregate record: %w", err)
	}
	return nil
}

func (s *aggregateRecordStore) ListByDay(ctx context.Context, group models.AggregateGroup, startMillis, endMillis int64) ([]*models.AggregateRecord, error) {
	docs, err := s.scanner.ScanDocuments(ctx, group.Name(), models.FieldDay, startMillis, endMillis)
	if err != nil {
		return nil, fmt.Errorf("failed to list aggregate records: %w", err)
	}
	records := make([]*models.AggregateRecord, 0, len(docs))
	for _, doc := range docs {
		record, err := toAggregateRecord(group, doc)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func toAggregateRecord(group models.AggregateGroup, doc *docstores.Document) (*models.AggregateRecord, error) {
	day, ok := doc.Properties.Int64(models.FieldDay)
	if !ok {
		return nil, fmt.Errorf("aggregate record %s has no %s", doc.Key, models.FieldDay)
	}
	count, ok := doc.Properties.Int64(group.Scope.MetricField())
	if !ok {
		return nil, fmt.Errorf("aggregate record %s has no %s", doc.Key, group.Scope.MetricField())
	}
	return &models.AggregateRecord{Group: group, Key: doc.Key.Name, Day: day, Count: count}, nil
}
