package docstores

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"usage-analytics/internal/shared/ulid"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// sqlDialect covers the few places where SQLite and PostgreSQL disagree on
// JSON access and DDL.
type sqlDialect interface {
	schema() []string
	propertiesParam() string
	filterExpr(field string, value any) (string, any)
	containsExpr(field string) (string, any)
	orderExpr(field string) (string, any)
	unboundedLimit() string
}

type sqliteDialect struct{}

func (sqliteDialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			namespace TEXT NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			properties TEXT NOT NULL,
			UNIQUE (namespace, kind, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents (namespace, kind)`,
	}
}

func (sqliteDialect) propertiesParam() string { return "?" }

func (sqliteDialect) filterExpr(field string, _ any) (string, any) {
	return "json_extract(properties, ?)", "$." + field
}

func (sqliteDialect) containsExpr(field string) (string, any) {
	return "EXISTS (SELECT 1 FROM json_each(properties, ?) WHERE json_each.value = ?)", "$." + field
}

func (sqliteDialect) orderExpr(field string) (string, any) {
	return "json_extract(properties, ?)", "$." + field
}

func (sqliteDialect) unboundedLimit() string { return "LIMIT -1" }

type postgresDialect struct{}

func (postgresDialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id BIGSERIAL PRIMARY KEY,
			namespace TEXT NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			properties JSONB NOT NULL,
			UNIQUE (namespace, kind, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents (namespace, kind)`,
	}
}

func (postgresDialect) propertiesParam() string { return "?::jsonb" }

func (postgresDialect) filterExpr(field string, value any) (string, any) {
	switch value.(type) {
	case int, int32, int64, float32, float64:
		return "(properties->>(?::text))::numeric", field
	case bool:
		return "(properties->>(?::text))::boolean", field
	default:
		return "properties->>(?::text)", field
	}
}

func (postgresDialect) containsExpr(field string) (string, any) {
	return "properties->(?::text) @> jsonb_build_array(?::text)", field
}

func (postgresDialect) orderExpr(field string) (string, any) {
	return "properties->(?::text)", field
}

func (postgresDialect) unboundedLimit() string { return "LIMIT ALL" }

type documentRow struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	Properties []byte `db:"properties"`
}

type sqlStore struct {
	db      *sqlx.DB
	dialect sqlDialect
}

// NewSQLiteStore opens a SQLite-backed DocStore. The dsn is a file path or
// ":memory:".
func NewSQLiteStore(ctx context.Context, dsn string) (DocStore, error) {
	db, err := sqlx.Open("sqlite3", sqliteDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	configureSQLiteConnection(db.DB, dsn)
	return newSQLStore(ctx, db, sqliteDialect{})
}

// NewPostgresStore opens a PostgreSQL-backed DocStore.
func NewPostgresStore(ctx context.Context, dsn string) (DocStore, error) {
	sdb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres store: %w", err)
	}
	return newSQLStore(ctx, sqlx.NewDb(sdb, "postgres"), postgresDialect{})
}

func newSQLStore(ctx context.Context, db *sqlx.DB, dialect sqlDialect) (*sqlStore, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	for _, stmt := range dialect.schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate documents table: %w", err)
		}
	}
	return &sqlStore{db: db, dialect: dialect}, nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func sqliteDSN(dsn string) string {
	if isMemoryDSN(dsn) {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
}

func configureSQLiteConnection(db *sql.DB, dsn string) {
	// Every connection to ":memory:" opens its own empty database.
	if isMemoryDSN(dsn) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
}

func (s *sqlStore) Get(ctx context.Context, key Key) (*Document, error) {
	if err := key.validate(true); err != nil {
		return nil, err
	}
	var row documentRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT id, name, properties FROM documents WHERE namespace = ? AND kind = ? AND name = ?`),
		key.Namespace, key.Kind, key.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s: %w", key, err)
	}
	return s.toDocument(key.Namespace, key.Kind, row, false)
}

func (s *sqlStore) Put(ctx context.Context, doc *Document) (Key, error) {
	return s.write(ctx, doc, "DO UPDATE SET properties = excluded.properties")
}

func (s *sqlStore) Create(ctx context.Context, doc *Document) (Key, error) {
	return s.write(ctx, doc, "DO NOTHING")
}

func (s *sqlStore) write(ctx context.Context, doc *Document, onConflict string) (Key, error) {
	key := doc.Key
	if err := key.validate(false); err != nil {
		return Key{}, err
	}
	if key.Incomplete() {
		key.Name = ulid.New()
	}
	data, err := json.Marshal(doc.Properties)
	if err != nil {
		return Key{}, fmt.Errorf("failed to marshal document properties: %w", err)
	}
	stmt := fmt.Sprintf(
		`INSERT INTO documents (namespace, kind, name, properties) VALUES (?, ?, ?, %s) ON CONFLICT (namespace, kind, name) %s`,
		s.dialect.propertiesParam(), onConflict)
	res, err := s.db.ExecContext(ctx, s.db.Rebind(stmt), key.Namespace, key.Kind, key.Name, string(data))
	if err != nil {
		return Key{}, fmt.Errorf("failed to write document %s: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Key{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return key, ErrAlreadyExists
	}
	return key, nil
}

func (s *sqlStore) Run(ctx context.Context, query *Query) (*Page, error) {
	if err := query.validate(); err != nil {
		return nil, err
	}
	state, err := decodeCursor(query.cursor)
	if err != nil {
		return nil, err
	}

	columns := "id, name, properties"
	if query.keysOnly {
		columns = "id, name"
	}

	var sb strings.Builder
	args := []any{query.namespace, query.kind}
	fmt.Fprintf(&sb, "SELECT %s FROM documents WHERE namespace = ? AND kind = ?", columns)
	for _, f := range query.filters {
		if f.Op == OpContains {
			expr, fieldArg := s.dialect.containsExpr(f.Field)
			sb.WriteString(" AND " + expr)
			args = append(args, fieldArg, f.Value)
			continue
		}
		expr, fieldArg := s.dialect.filterExpr(f.Field, f.Value)
		fmt.Fprintf(&sb, " AND %s %s ?", expr, f.Op)
		args = append(args, fieldArg, f.Value)
	}

	// Unordered queries page by row id, which stays stable across inserts.
	keyset := len(query.orders) == 0
	if keyset && state.AfterID > 0 {
		sb.WriteString(" AND id > ?")
		args = append(args, state.AfterID)
	}

	sb.WriteString(" ORDER BY ")
	for _, o := range query.orders {
		expr, fieldArg := s.dialect.orderExpr(o.Field)
		direction := "ASC"
		if o.Descending {
			direction = "DESC"
		}
		fmt.Fprintf(&sb, "%s %s, ", expr, direction)
		args = append(args, fieldArg)
	}
	sb.WriteString("id ASC")

	offset := 0
	if !keyset {
		offset = state.Offset
	}
	if query.limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, query.limit+1)
	} else if offset > 0 {
		sb.WriteString(" " + s.dialect.unboundedLimit())
	}
	if offset > 0 {
		sb.WriteString(" OFFSET ?")
		args = append(args, offset)
	}

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(sb.String()), args...); err != nil {
		return nil, fmt.Errorf("failed to run query on %s: %w", query.kind, err)
	}

	page := &Page{MoreResults: NoMoreResults}
	if query.limit > 0 && len(rows) > query.limit {
		rows = rows[:query.limit]
		page.MoreResults = MoreResultsAfterLimit
	}
	page.Documents = make([]*Document, 0, len(rows))
	for _, row := range rows {
		doc, err := s.toDocument(query.namespace, query.kind, row, query.keysOnly)
		if err != nil {
			return nil, err
		}
		page.Documents = append(page.Documents, doc)
	}
	if len(rows) > 0 {
		next := cursorState{Offset: offset + len(rows)}
		if keyset {
			next = cursorState{AfterID: rows[len(rows)-1].ID}
		}
		if page.EndCursor, err = encodeCursor(next); err != nil {
			return nil, err
		}
	}
	return page, nil
}

func (s *sqlStore) toDocument(namespace, kind string, row documentRow, keysOnly bool) (*Document, error) {
	doc := &Document{Key: NameKey(namespace, kind, row.Name)}
	if keysOnly {
		return doc, nil
	}
	props := Properties{}
	decoder := json.NewDecoder(bytes.NewReader(row.Properties))
	decoder.UseNumber()
	if err := decoder.Decode(&props); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s: %w", doc.Key, err)
	}
	doc.Properties = props
	return doc, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
