// Package redis implements ports.DocumentSource on a Redis backend.
// Read operations return cold producers: the round-trip happens at
// subscription time on the worker goroutine, not when the producer is
// built.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/sluice/pkg/ports"
	"github.com/aretw0/sluice/pkg/producer"
	backend "github.com/redis/go-redis/v9"
)

// Store is a Redis-backed document source.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ ports.DocumentSource = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithPrefix namespaces all keys (default "sluice:").
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets an expiration on stored documents. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewFromClient creates a Store using an existing Redis client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "sluice:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get produces the document under key; a missing or expired key is an
// empty completion.
func (s *Store) Get(key string) producer.Producer[[]byte] {
	return producer.Func[[]byte](func(ctx context.Context) ([]byte, bool, error) {
		val, err := s.client.Get(ctx, s.prefix+key).Bytes()
		if errors.Is(err, backend.Nil) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("redis get %q: %w", key, err)
		}
		return val, true, nil
	})
}

// List produces all documents under prefix in lexicographic key order.
// Uses SCAN to avoid blocking the server on large keyspaces.
func (s *Store) List(prefix string) producer.Producer[[][]byte] {
	return producer.Func[[][]byte](func(ctx context.Context) ([][]byte, bool, error) {
		keys, err := s.scanKeys(ctx, prefix)
		if err != nil {
			return nil, false, err
		}
		if len(keys) == 0 {
			return [][]byte{}, true, nil
		}

		vals, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, false, fmt.Errorf("redis mget: %w", err)
		}
		docs := make([][]byte, 0, len(vals))
		for _, v := range vals {
			// Keys can expire between SCAN and MGET.
			if str, ok := v.(string); ok {
				docs = append(docs, []byte(str))
			}
		}
		return docs, true, nil
	})
}

// Count produces the number of documents under prefix.
func (s *Store) Count(prefix string) producer.Producer[int64] {
	return producer.Func[int64](func(ctx context.Context) (int64, bool, error) {
		keys, err := s.scanKeys(ctx, prefix)
		if err != nil {
			return 0, false, err
		}
		return int64(len(keys)), true, nil
	})
}

// Put stores a document, applying the configured TTL.
func (s *Store) Put(ctx context.Context, key string, doc []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, doc, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes a document. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (s *Store) scanKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	// SCAN order is unspecified; keep listings deterministic.
	sort.Strings(keys)
	return keys, nil
}
