package ports

import (
	"context"

	"github.com/aretw0/sluice/pkg/producer"
)

// DocumentSource is an upstream data collaborator storing raw JSON
// documents under string keys. Read operations return producers: nothing
// runs until the dispatcher (or an operator chain) subscribes, and a
// missing key is an empty completion, not a failure.
type DocumentSource interface {
	// Get produces the document stored under key, or completes empty.
	Get(key string) producer.Producer[[]byte]

	// List produces all documents whose key starts with prefix, in
	// lexicographic key order.
	List(prefix string) producer.Producer[[][]byte]

	// Count produces the number of documents whose key starts with prefix.
	Count(prefix string) producer.Producer[int64]

	// Put stores a document synchronously. Writes are plain calls: the
	// producer contract only covers eventual reads.
	Put(ctx context.Context, key string, doc []byte) error

	// Delete removes a document. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
