package docstores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Backend drivers selectable in configuration.
const (
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
	ErrInvalidKey    = errors.New("invalid document key")
	ErrInvalidQuery  = errors.New("invalid query")
	ErrInvalidCursor = errors.New("invalid query cursor")
)

// Key identifies a document by namespace, kind and name. A key with an empty
// name is incomplete; Put assigns it a generated name.
type Key struct {
	Namespace string
	Kind      string
	Name      string
}

func NameKey(namespace, kind, name string) Key {
	return Key{Namespace: namespace, Kind: kind, Name: name}
}

func IncompleteKey(namespace, kind string) Key {
	return Key{Namespace: namespace, Kind: kind}
}

func (k Key) Incomplete() bool {
	return k.Name == ""
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Namespace, k.Kind, k.Name)
}

func (k Key) validate(requireName bool) error {
	if k.Namespace == "" || k.Kind == "" {
		return fmt.Errorf("%w: namespace and kind are required", ErrInvalidKey)
	}
	if requireName && k.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidKey)
	}
	if !fieldPattern.MatchString(k.Kind) {
		return fmt.Errorf("%w: kind %q", ErrInvalidKey, k.Kind)
	}
	return nil
}

// Properties holds the fields of a document. Numeric values read back from a
// backend may be json.Number, int64 or float64 depending on the backend, so
// use the typed accessors.
type Properties map[string]any

func (p Properties) Int64(field string) (int64, bool) {
	switch v := p[field].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (p Properties) String(field string) (string, bool) {
	v, ok := p[field].(string)
	return v, ok
}

// Strings reads a list of strings. Backends decode lists as []any.
func (p Properties) Strings(field string) ([]string, bool) {
	switch v := p[field].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

type Document struct {
	Key        Key
	Properties Properties
}

//go:generate mockgen -source=doc_store.go -destination=./mocks/doc_store_mock.go -package=mocks
type DocStore interface {
	// Get returns ErrNotFound when no document has the key.
	Get(ctx context.Context, key Key) (*Document, error)
	// Put writes the document, replacing any existing one with the same key.
	Put(ctx context.Context, doc *Document) (Key, error)
	// Create writes the document only if no document has its key; otherwise it
	// returns ErrAlreadyExists and leaves the stored document untouched.
	Create(ctx context.Context, doc *Document) (Key, error)
	// Run executes one page of the query.
	Run(ctx context.Context, query *Query) (*Page, error)
	Close() error
}
