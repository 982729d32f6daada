// Package http binds sluice controller actions to a chi-routed HTTP
// server: it snapshots the incoming request, hands the action's producer
// to the dispatcher, and applies the resulting response action back to
// the ResponseWriter.
package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/sluice"
	"github.com/aretw0/sluice/internal/logging"
	"github.com/aretw0/sluice/pkg/domain"
	"github.com/aretw0/sluice/pkg/ports"
	"github.com/aretw0/sluice/pkg/producer"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps the request body captured into the snapshot.
const maxBodyBytes = 1 << 20

// Action is a controller action: given the immutable request snapshot, it
// returns a producer of the response action. The action itself runs
// synchronously on the request goroutine and must only build the chain;
// all IO belongs inside the producers.
type Action func(req domain.ExchangeContext) producer.Producer[domain.Action]

// Binder turns actions into http.Handlers backed by a shared dispatcher.
type Binder struct {
	dispatcher *sluice.Dispatcher
	renderer   ports.Renderer
	logger     *slog.Logger
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithRenderer sets the view renderer used for Render actions.
func WithRenderer(r ports.Renderer) BinderOption {
	return func(b *Binder) {
		b.renderer = r
	}
}

// WithLogger sets the binder's logger.
func WithLogger(logger *slog.Logger) BinderOption {
	return func(b *Binder) {
		b.logger = logger
	}
}

// NewBinder creates a Binder around a dispatcher.
func NewBinder(d *sluice.Dispatcher, opts ...BinderOption) *Binder {
	b := &Binder{
		dispatcher: d,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Handle adapts an action into an http.HandlerFunc. The request is
// snapshotted before the producer is subscribed; the handler then blocks
// until the dispatcher has applied exactly one response action (or the
// client went away).
func (b *Binder) Handle(action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := Snapshot(r)
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			b.logger.Warn("request snapshot failed", "err", err, "path", r.URL.Path)
			return
		}

		ex := sluice.NewExchange(&responseApplier{
			w:        w,
			renderer: b.renderer,
		})
		if err := b.dispatcher.Dispatch(r.Context(), ex, action(snap)); err != nil {
			// Cancellation and protocol violations are already logged by
			// the dispatcher; nothing useful can be written here.
			b.logger.Debug("dispatch ended with error", "err", err, "path", r.URL.Path)
		}
	}
}

// Snapshot captures request-derived data into an immutable
// ExchangeContext. Route parameters come from the chi routing context;
// the body is read fully (bounded) so producer stages never touch the
// live request.
func Snapshot(r *http.Request) (domain.ExchangeContext, error) {
	params := map[string]string{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" {
				continue
			}
			params[key] = rctx.URLParams.Values[i]
		}
	}

	query := map[string]string{}
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			query[key] = vals[0]
		}
	}

	header := map[string]string{}
	for key := range r.Header {
		header[key] = r.Header.Get(key)
	}

	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return domain.ExchangeContext{}, err
		}
	}

	return domain.NewExchangeContext(r.Method, r.URL.Path, params, query, header, body), nil
}
