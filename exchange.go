package sluice

import (
	"context"
	"sync/atomic"

	"github.com/aretw0/sluice/pkg/domain"
	"github.com/aretw0/sluice/pkg/ports"
)

// Exchange is the single shared mutable resource of a dispatch: the
// target an action is applied to. Access is serialized through an atomic
// completion flag so a response can be written safely from a worker
// goroutine, and written only once.
type Exchange struct {
	applier   ports.Applier
	completed atomic.Bool
}

// NewExchange wraps an applier as a dispatch target.
func NewExchange(applier ports.Applier) *Exchange {
	return &Exchange{applier: applier}
}

// Apply writes act through the applier. The first call wins; any further
// call fails with domain.ErrProtocolViolation without touching the
// applier. Safe to call from any goroutine.
func (ex *Exchange) Apply(ctx context.Context, act domain.Action) error {
	if !ex.completed.CompareAndSwap(false, true) {
		return domain.ErrProtocolViolation
	}
	return ex.applier.Apply(ctx, act)
}

// Completed reports whether an action has been applied (or claimed).
func (ex *Exchange) Completed() bool {
	return ex.completed.Load()
}
