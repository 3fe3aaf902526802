package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/kritsw/attendant/agent/contract"
)

// PostgresConfig configures the database-backed record store.
type PostgresConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

// NewPostgresDB opens a bun handle over pgdriver.
func NewPostgresDB(cfg PostgresConfig) (*bun.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%w: postgres dsn is required", contractx.ErrValidation)
	}
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithTimeout(cfg.Timeout),
	)
	sqldb := sql.OpenDB(connector)
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// pgRecord is one persisted snapshot. Every store kind shares the table; the
// payload keeps the same JSON shape as the file stores.
type pgRecord struct {
	bun.BaseModel `bun:"table:assistant_records"`

	ID        int64           `bun:"id,pk,autoincrement"`
	Kind      string          `bun:"kind,notnull"`
	Payload   json.RawMessage `bun:"payload,type:jsonb,notnull"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:current_timestamp"`
}

// EnsureSchema creates the record table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*pgRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: create record table: %v", contractx.ErrPersistence, err)
	}
	return nil
}

// PgLog is the Postgres implementation of Log, the production upgrade path
// over the whole-file-rewrite stores: inserts are row-appends, so concurrent
// sessions no longer overwrite each other.
type PgLog[T any] struct {
	db   *bun.DB
	kind string
}

func NewPgLog[T any](db *bun.DB, kind string) *PgLog[T] {
	return &PgLog[T]{db: db, kind: kind}
}

func (p *PgLog[T]) Append(ctx context.Context, rec T) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshal %s record: %v", contractx.ErrPersistence, p.kind, err)
	}
	row := pgRecord{
		Kind:      p.kind,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := p.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("%w: insert %s record: %v", contractx.ErrPersistence, p.kind, err)
	}
	return nil
}

func (p *PgLog[T]) List(ctx context.Context) ([]T, error) {
	var rows []pgRecord
	err := p.db.NewSelect().
		Model(&rows).
		Where("kind = ?", p.kind).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s records: %v", contractx.ErrPersistence, p.kind, err)
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var rec T
		if err := json.Unmarshal(row.Payload, &rec); err != nil {
			return nil, fmt.Errorf("%w: decode %s record id=%d: %v", contractx.ErrPersistence, p.kind, row.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
