package docstores

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"usage-analytics/internal/shared/ulid"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const firestoreNamespaces = "namespaces"

// firestoreStore maps a key to the document namespaces/{namespace}/{kind}/{name}.
// Names are path-escaped since they may contain "/".
type firestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID string) (DocStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &firestoreStore{client: client}, nil
}

func (s *firestoreStore) collection(namespace, kind string) *firestore.CollectionRef {
	return s.client.Collection(firestoreNamespaces).Doc(namespace).Collection(kind)
}

func (s *firestoreStore) docRef(key Key) *firestore.DocumentRef {
	return s.collection(key.Namespace, key.Kind).Doc(url.PathEscape(key.Name))
}

func (s *firestoreStore) Get(ctx context.Context, key Key) (*Document, error) {
	if err := key.validate(true); err != nil {
		return nil, err
	}
	snap, err := s.docRef(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s: %w", key, err)
	}
	return &Document{Key: key, Properties: Properties(snap.Data())}, nil
}

func (s *firestoreStore) Put(ctx context.Context, doc *Document) (Key, error) {
	key, err := s.completeKey(doc.Key)
	if err != nil {
		return Key{}, err
	}
	if _, err := s.docRef(key).Set(ctx, map[string]any(doc.Properties)); err != nil {
		return Key{}, fmt.Errorf("failed to write document %s: %w", key, err)
	}
	return key, nil
}

func (s *firestoreStore) Create(ctx context.Context, doc *Document) (Key, error) {
	key, err := s.completeKey(doc.Key)
	if err != nil {
		return Key{}, err
	}
	if _, err := s.docRef(key).Create(ctx, map[string]any(doc.Properties)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return key, ErrAlreadyExists
		}
		return Key{}, fmt.Errorf("failed to create document %s: %w", key, err)
	}
	return key, nil
}

func (s *firestoreStore) completeKey(key Key) (Key, error) {
	if err := key.validate(false); err != nil {
		return Key{}, err
	}
	if key.Incomplete() {
		key.Name = ulid.New()
	}
	return key, nil
}

func (s *firestoreStore) Run(ctx context.Context, query *Query) (*Page, error) {
	if err := query.validate(); err != nil {
		return nil, err
	}
	state, err := decodeCursor(query.cursor)
	if err != nil {
		return nil, err
	}

	q := s.collection(query.namespace, query.kind).Query
	for _, f := range query.filters {
		op := string(f.Op)
		switch f.Op {
		case OpEqual:
			op = "=="
		case OpContains:
			op = "array-contains"
		}
		q = q.Where(f.Field, op, f.Value)
	}

	// Firestore requires the first ordering to be on the range-filtered field.
	orders := query.orders
	if len(orders) == 0 {
		if field, ok := query.inequalityField(); ok {
			orders = []Order{{Field: field}}
		}
	}
	orderFields := make([]string, 0, len(orders))
	for _, o := range orders {
		direction := firestore.Asc
		if o.Descending {
			direction = firestore.Desc
		}
		q = q.OrderBy(o.Field, direction)
		orderFields = append(orderFields, o.Field)
	}
	q = q.OrderBy(firestore.DocumentID, firestore.Asc)

	if query.keysOnly {
		// Order values are still needed to build the end cursor.
		q = q.Select(orderFields...)
	}
	if state.DocID != "" {
		if len(state.Values) != len(orderFields) {
			return nil, fmt.Errorf("%w: cursor does not match query ordering", ErrInvalidCursor)
		}
		q = q.StartAfter(append(state.Values, state.DocID)...)
	}
	if query.limit > 0 {
		q = q.Limit(query.limit + 1)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var snaps []*firestore.DocumentSnapshot
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to run query on %s: %w", query.kind, err)
		}
		snaps = append(snaps, snap)
	}

	page := &Page{MoreResults: NoMoreResults}
	if query.limit > 0 && len(snaps) > query.limit {
		snaps = snaps[:query.limit]
		page.MoreResults = MoreResultsAfterLimit
	}
	page.Documents = make([]*Document, 0, len(snaps))
	for _, snap := range snaps {
		name, err := url.PathUnescape(snap.Ref.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to decode document id %q: %w", snap.Ref.ID, err)
		}
		doc := &Document{Key: NameKey(query.namespace, query.kind, name)}
		if !query.keysOnly {
			doc.Properties = Properties(snap.Data())
		}
		page.Documents = append(page.Documents, doc)
	}

	if len(snaps) > 0 {
		last := snaps[len(snaps)-1]
		data := last.Data()
		next := cursorState{DocID: last.Ref.ID, Values: make([]any, 0, len(orderFields))}
		for _, field := range orderFields {
			next.Values = append(next.Values, data[field])
		}
		if page.EndCursor, err = encodeCursor(next); err != nil {
			return nil, err
		}
	}
	return page, nil
}

func (s *firestoreStore) Close() error {
	return s.client.Close()
}
