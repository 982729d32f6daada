package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentSourceContract verifies that a DocumentSource implementation
// adheres to the interface contract. Adapter test suites call this against
// a fresh, empty source.
func RunDocumentSourceContract(t *testing.T, source DocumentSource) {
	ctx := context.Background()

	t.Run("Get Missing Is Empty", func(t *testing.T) {
		v, ok, err := source.Get("contract:absent").Produce(ctx)
		require.NoError(t, err, "missing key must be empty, not a failure")
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("Put Then Get", func(t *testing.T) {
		doc := []byte(`{"id":"1"}`)
		require.NoError(t, source.Put(ctx, "contract:doc:1", doc))

		v, ok, err := source.Get("contract:doc:1").Produce(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, doc, v)
	})

	t.Run("List And Count By Prefix", func(t *testing.T) {
		require.NoError(t, source.Put(ctx, "contract:doc:2", []byte(`{"id":"2"}`)))
		require.NoError(t, source.Put(ctx, "contract:other:9", []byte(`{"id":"9"}`)))

		docs, ok, err := source.List("contract:doc:").Produce(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, docs, 2)
		// Lexicographic key order.
		assert.Equal(t, []byte(`{"id":"1"}`), docs[0])
		assert.Equal(t, []byte(`{"id":"2"}`), docs[1])

		n, ok, err := source.Count("contract:doc:").Produce(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(2), n)
	})

	t.Run("Producers Are Cold", func(t *testing.T) {
		// Building the producer must not snapshot the store; the read
		// happens at subscription time.
		p := source.Get("contract:late")
		require.NoError(t, source.Put(ctx, "contract:late", []byte(`"x"`)))

		_, ok, err := p.Produce(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, source.Delete(ctx, "contract:doc:1"))
		require.NoError(t, source.Delete(ctx, "contract:doc:1"), "double delete is a no-op")

		_, ok, err := source.Get("contract:doc:1").Produce(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
