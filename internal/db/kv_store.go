package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbgen "github.com/codr1/storefront/internal/db/generated"
)

type kvQueries interface {
	GetKV(ctx context.Context, key string) (string, error)
	PutKV(ctx context.Context, arg dbgen.PutKVParams) error
	DeleteKV(ctx context.Context, key string) error
}

// KVStore persists a single value under a fixed key, the way a browser's
// localStorage holds one entry per store name.
type KVStore struct {
	queries kvQueries
	key     string
}

func NewKVStore(queries kvQueries, key string) *KVStore {
	return &KVStore{queries: queries, key: key}
}

// Load returns the stored value, or nil when nothing has been saved yet.
func (s *KVStore) Load(ctx context.Context) ([]byte, error) {
	value, err := s.queries.GetKV(ctx, s.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %q: %w", s.key, err)
	}
	return []byte(value), nil
}

func (s *KVStore) Save(ctx context.Context, value []byte) error {
	if err := s.queries.PutKV(ctx, dbgen.PutKVParams{Key: s.key, Value: string(value)}); err != nil {
		return fmt.Errorf("save %q: %w", s.key, err)
	}
	return nil
}

func (s *KVStore) Clear(ctx context.Context) error {
	if err := s.queries.DeleteKV(ctx, s.key); err != nil {
		return fmt.Errorf("clear %q: %w", s.key, err)
	}
	return nil
}
