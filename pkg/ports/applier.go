package ports

import (
	"context"
	"io"

	"github.com/aretw0/sluice/pkg/domain"
)

// Applier performs the actual write of a response action to the HTTP
// exchange. Implementations must tolerate being called from a worker
// goroutine other than the one that received the request.
//
// The dispatcher guarantees Apply is invoked at most once per exchange;
// the applier does not need its own guard.
type Applier interface {
	Apply(ctx context.Context, act domain.Action) error
}

// Renderer resolves a Render action into bytes: it writes the named view
// with the given model. Hosts that only serve structured payloads can run
// without one; applying a Render action then fails.
type Renderer interface {
	Render(w io.Writer, view string, model map[string]any) error
}
