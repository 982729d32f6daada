// Package memory implements ports.DocumentSource in process memory.
// Intended for tests and demos; reads still honor the cold-producer
// contract (the map is consulted at subscription time).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/sluice/pkg/ports"
	"github.com/aretw0/sluice/pkg/producer"
)

// Store is an in-memory document source safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

var _ ports.DocumentSource = (*Store)(nil)

// New creates an empty Store.
func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

// Get produces the document under key, or completes empty.
func (s *Store) Get(key string) producer.Producer[[]byte] {
	return producer.Func[[]byte](func(ctx context.Context) ([]byte, bool, error) {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		s.mu.RLock()
		doc, ok := s.docs[key]
		s.mu.RUnlock()
		if !ok {
			return nil, false, nil
		}
		return append([]byte(nil), doc...), true, nil
	})
}

// List produces all documents under prefix in lexicographic key order.
func (s *Store) List(prefix string) producer.Producer[[][]byte] {
	return producer.Func[[][]byte](func(ctx context.Context) ([][]byte, bool, error) {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		s.mu.RLock()
		keys := make([]string, 0, len(s.docs))
		for k := range s.docs {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		docs := make([][]byte, len(keys))
		for i, k := range keys {
			docs[i] = append([]byte(nil), s.docs[k]...)
		}
		s.mu.RUnlock()
		return docs, true, nil
	})
}

// Count produces the number of documents under prefix.
func (s *Store) Count(prefix string) producer.Producer[int64] {
	return producer.Func[int64](func(ctx context.Context) (int64, bool, error) {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		s.mu.RLock()
		defer s.mu.RUnlock()
		var n int64
		for k := range s.docs {
			if strings.HasPrefix(k, prefix) {
				n++
			}
		}
		return n, true, nil
	})
}

// Put stores a copy of doc under key.
func (s *Store) Put(ctx context.Context, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = append([]byte(nil), doc...)
	return nil
}

// Delete removes a document. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}
