package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
	qb "github.com/riskibarqy/the-gaffer/internal/platform/querybuilder"
)

const upsertKVEntrySuffix = `ON CONFLICT (workspace, key)
DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at`

// KVStore keeps namespaced JSON values in the kv_entries table.
type KVStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewKVStore(db *sqlx.DB) *KVStore {
	return &KVStore{db: db, now: time.Now}
}

func (s *KVStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	if err := kvstore.ValidateNamespace(namespace); err != nil {
		return nil, false, err
	}

	query, args, err := qb.Select("workspace", "key", "value", "updated_at").
		From(kvEntriesTable).
		Where(
			qb.Eq("workspace", namespace),
			qb.Eq("key", key),
		).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get kv entry query: %w", err)
	}

	ctx, span := startQuerySpan(ctx, "postgres.KVStore.Get", query)
	defer span.End()

	var row kvEntryTableModel
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		if isUndefinedTable(err) {
			return nil, false, fmt.Errorf("get kv entry: %s missing, run migrations: %w", kvEntriesTable, err)
		}
		return nil, false, fmt.Errorf("get kv entry key=%s: %w", key, err)
	}

	return []byte(row.Value), true, nil
}

// SetMany upserts every entry with one statement, so the batch is atomic.
func (s *KVStore) SetMany(ctx context.Context, namespace string, entries ...kvstore.Entry) error {
	if err := kvstore.ValidateNamespace(namespace); err != nil {
		return err
	}
	entries = kvstore.Dedupe(entries)
	if len(entries) == 0 {
		return nil
	}

	now := s.now().UTC()
	models := make([]any, 0, len(entries))
	for _, e := range entries {
		if e.Key == "" {
			return fmt.Errorf("entry key is required")
		}
		models = append(models, kvEntryTableModel{
			Workspace: namespace,
			Key:       e.Key,
			Value:     string(e.Value),
			UpdatedAt: now,
		})
	}

	query, args, err := qb.InsertModels(kvEntriesTable, upsertKVEntrySuffix, models...)
	if err != nil {
		return fmt.Errorf("build upsert kv entries query: %w", err)
	}
	ctx, span := startQuerySpan(ctx, "postgres.KVStore.SetMany", query)
	defer span.End()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert kv entries keys=%v: %w", kvstore.Keys(entries), err)
	}

	return nil
}

func (s *KVStore) Delete(ctx context.Context, namespace string, keys ...string) error {
	if err := kvstore.ValidateNamespace(namespace); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	query, args, err := qb.DeleteFrom(kvEntriesTable).
		Where(
			qb.Eq("workspace", namespace),
			qb.In("key", keys),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete kv entries query: %w", err)
	}
	ctx, span := startQuerySpan(ctx, "postgres.KVStore.Delete", query)
	defer span.End()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete kv entries keys=%v: %w", keys, err)
	}

	return nil
}
