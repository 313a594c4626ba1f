package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	backend "github.com/redis/go-redis/v9"
)

// DefaultSessionPrefix namespaces session selection keys.
const DefaultSessionPrefix = "scena:session:"

// SelectionStore implements ports.SelectionStore using Redis, so replicas
// behind a load balancer share each session's selection.
// It reuses the document Store's indexing scheme: one JSON string per
// session plus a sorted set of ids scored by expiration.
type SelectionStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// NewSelectionStore creates a selection store. WithTTL and WithPrefix apply
// as for documents; the default prefix is DefaultSessionPrefix.
func NewSelectionStore(client *backend.Client, opts ...Option) *SelectionStore {
	// Options are written against Store; apply them to a scratch value.
	cfg := &Store{prefix: DefaultSessionPrefix}
	for _, opt := range opts {
		opt(cfg)
	}
	return &SelectionStore{client: client, prefix: cfg.prefix, ttl: cfg.ttl}
}

func (s *SelectionStore) key(session string) string {
	return s.prefix + itemNamespace + session
}

func (s *SelectionStore) indexKey() string {
	return s.prefix + indexName
}

// Save persists the selection. Each save refreshes the TTL.
func (s *SelectionStore) Save(ctx context.Context, session string, sel group.Targets[string]) error {
	if sel == nil {
		sel = group.Targets[string]{}
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(session), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: session})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the selection.
func (s *SelectionStore) Load(ctx context.Context, session string) (group.Targets[string], error) {
	val, err := s.client.Get(ctx, s.key(session)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var sel group.Targets[string]
	if err := json.Unmarshal(val, &sel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection %s: %w", session, err)
	}
	return sel, nil
}

// Delete removes the selection and its index entry.
func (s *SelectionStore) Delete(ctx context.Context, session string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(session))
	pipe.ZRem(ctx, s.indexKey(), session)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the ids of sessions that have not expired.
func (s *SelectionStore) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}
