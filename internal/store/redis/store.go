// Package redis implements the document store on Redis/Valkey hashes via
// rueidis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"

	"github.com/palapa-cloud/palapa-etl/internal/store"
)

// Compile-time check: Store implements store.DocumentStore.
var _ store.DocumentStore = (*Store)(nil)

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// Store writes each document as a hash under <prefix>:<id> and tracks
// ids in the <prefix>:ids set.
type Store struct {
	client rueidis.Client
	prefix string
}

// NewStore creates a Redis document store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, prefix: keyPrefix(cfg.KeyPrefix)}, nil
}

// NewStoreForTest wraps an existing (mock) client.
func NewStoreForTest(client rueidis.Client, prefix string) *Store {
	return &Store{client: client, prefix: keyPrefix(prefix)}
}

func keyPrefix(p string) string {
	if p == "" {
		return "destinations"
	}
	return p
}

// GenerateID implements store.DocumentStore.
func (s *Store) GenerateID() string {
	return uuid.NewString()
}

// BatchWrite stores every document hash and registers the ids, all in a
// single DoMulti round-trip.
func (s *Store) BatchWrite(ctx context.Context, docs []store.Document) error {
	if len(docs) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, 0, len(docs)+1)
	ids := make([]string, len(docs))
	for i := range docs {
		doc := &docs[i]
		ids[i] = doc.ID
		cmd := s.client.B().Hset().Key(s.key(doc.ID)).FieldValue()
		for k, v := range doc.Fields {
			cmd = cmd.FieldValue(k, v)
		}
		cmds = append(cmds, cmd.Build())
	}
	cmds = append(cmds, s.client.B().Sadd().Key(s.idsKey()).Member(ids...).Build())

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			if i < len(docs) {
				return fmt.Errorf("write document %s: %w", docs[i].ID, err)
			}
			return fmt.Errorf("register ids: %w", err)
		}
	}
	return nil
}

// Get fetches one document hash.
func (s *Store) Get(ctx context.Context, id string) (store.Document, error) {
	cmd := s.client.B().Hgetall().Key(s.key(id)).Build()
	fields, err := s.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return store.Document{}, fmt.Errorf("get document %s: %w", id, err)
	}
	return store.Document{ID: id, Fields: fields}, nil
}

// Count returns the number of registered document ids.
func (s *Store) Count(ctx context.Context) (int64, error) {
	cmd := s.client.B().Scard().Key(s.idsKey()).Build()
	n, err := s.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (s *Store) key(id string) string {
	return s.prefix + ":" + id
}

func (s *Store) idsKey() string {
	return s.prefix + ":ids"
}
