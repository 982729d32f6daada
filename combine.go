package sluice

import (
	"github.com/aretw0/sluice/pkg/domain"
	"github.com/aretw0/sluice/pkg/producer"
)

// Combine joins the common two-source pair of a paged listing: the items
// producer and the total-count producer, zipped into a single Page. Both
// inputs are subscribed concurrently; the page materializes only if both
// emit, and the first failure wins.
func Combine[T any](items producer.Producer[[]T], count producer.Producer[int64]) producer.Producer[domain.Page[T]] {
	return producer.Zip(items, count, func(its []T, n int64) domain.Page[T] {
		return domain.Page[T]{Items: its, Count: n}
	})
}

// CombineToRender combines items and count directly into a Render action
// for the named view, with the page under "items" and "count" model keys.
func CombineToRender[T any](view string, items producer.Producer[[]T], count producer.Producer[int64]) producer.Producer[domain.Action] {
	return producer.Zip(items, count, func(its []T, n int64) domain.Action {
		return domain.Render(view, map[string]any{
			"items": its,
			"count": n,
		})
	})
}
