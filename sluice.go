package sluice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/sluice/internal/logging"
	"github.com/aretw0/sluice/pkg/domain"
	"github.com/aretw0/sluice/pkg/observability"
	"github.com/aretw0/sluice/pkg/producer"
)

// Version is the library version, set at build time via ldflags.
var Version = "dev"

// Dispatcher binds a controller action's producer to an HTTP exchange:
// it subscribes off the request goroutine, maps the terminal outcome to a
// response action, and applies it exactly once.
type Dispatcher struct {
	logger        *slog.Logger
	defaultAction domain.Action
	errorView     string
	timeout       time.Duration
	handlers      []errorHandler
	metrics       *observability.Metrics
}

type errorHandler struct {
	match  func(error) bool
	handle func(error) domain.Action
}

// Option defines a functional option for configuring the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a custom structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithDefaultAction sets the action applied when a producer completes
// empty. Defaults to Respond(nil, 404).
func WithDefaultAction(act domain.Action) Option {
	return func(d *Dispatcher) {
		d.defaultAction = act
	}
}

// WithErrorView sets the view used when converting a ValidationError into
// a RespondErrors action. Empty means structured output only.
func WithErrorView(view string) Option {
	return func(d *Dispatcher) {
		d.errorView = view
	}
}

// WithTimeout bounds every dispatched producer with a deadline. Producers
// that never terminate otherwise hang the exchange; zero disables the
// bound.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithErrorHandler registers an action for the error category identified
// by target (matched with errors.Is). Handlers are consulted in
// registration order, before the built-in validation handling.
func WithErrorHandler(target error, handle func(error) domain.Action) Option {
	return func(d *Dispatcher) {
		d.handlers = append(d.handlers, errorHandler{
			match:  func(err error) bool { return errors.Is(err, target) },
			handle: handle,
		})
	}
}

// WithErrorHandlerFunc registers an action for errors matched by an
// arbitrary predicate, for categories not identified by a sentinel.
func WithErrorHandlerFunc(match func(error) bool, handle func(error) domain.Action) Option {
	return func(d *Dispatcher) {
		d.handlers = append(d.handlers, errorHandler{match: match, handle: handle})
	}
}

// WithMetrics attaches dispatch metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// New initializes a Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:        logging.NewNop(),
		defaultAction: domain.Respond(nil, http.StatusNotFound),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch subscribes to p and applies its terminal outcome to ex.
//
// On a value, the value is applied. On empty completion, the configured
// default action is applied. On failure, the action comes from the first
// matching registered handler, then the built-in validation conversion,
// then a logged generic 500. If ctx is cancelled before the producer
// terminates (client disconnect), the subscription is cancelled and
// nothing is applied; the late terminal event is discarded.
//
// The returned error reports dispatch-level defects (a failed apply, a
// protocol violation, cancellation); it is nil whenever a response action
// was applied, including the error-derived ones.
func (d *Dispatcher) Dispatch(ctx context.Context, ex *Exchange, p producer.Producer[domain.Action]) error {
	start := time.Now()
	if d.timeout > 0 {
		p = producer.WithTimeout(p, d.timeout)
	}

	sub := producer.Subscribe(ctx, p)
	select {
	case <-ctx.Done():
		sub.Cancel()
		d.logger.Debug("dispatch canceled before terminal event")
		d.metrics.ObserveDispatch(observability.OutcomeCanceled, time.Since(start))
		return ctx.Err()
	case <-sub.Done():
	}

	// The terminal event can race an abort; an aborted exchange gets
	// nothing, even when the outcome arrived first.
	if ctx.Err() != nil {
		sub.Cancel()
		d.logger.Debug("dispatch canceled, terminal event discarded")
		d.metrics.ObserveDispatch(observability.OutcomeCanceled, time.Since(start))
		return ctx.Err()
	}

	out, _ := sub.Outcome()
	act, outcome := d.resolve(out)
	if err := ex.Apply(ctx, act); err != nil {
		if errors.Is(err, domain.ErrProtocolViolation) {
			// A second apply is a programming defect; surface it loudly.
			d.logger.Error("response action rejected, exchange already completed", "err", err)
			d.metrics.ObserveViolation()
			return err
		}
		d.logger.Error("failed to apply response action", "err", err, "kind", act.Kind)
		return err
	}

	d.metrics.ObserveDispatch(outcome, time.Since(start))
	return nil
}

// resolve maps a terminal outcome to the action to apply.
func (d *Dispatcher) resolve(out producer.Outcome[domain.Action]) (domain.Action, string) {
	switch {
	case out.Err != nil:
		return d.resolveError(out.Err), observability.OutcomeError
	case !out.Present:
		return d.defaultAction, observability.OutcomeEmpty
	default:
		return out.Value, observability.OutcomeValue
	}
}

func (d *Dispatcher) resolveError(err error) domain.Action {
	// An error-shaped empty result takes the empty path.
	if errors.Is(err, domain.ErrEmptyResult) {
		return d.defaultAction
	}

	for _, h := range d.handlers {
		if h.match(err) {
			return h.handle(err)
		}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return domain.RespondErrors(ve.Fields, d.errorView)
	}

	// Unrecognized upstream failure: log it, answer generically, never
	// retry here.
	d.logger.Error("producer failed", "err", err)
	return domain.Respond(nil, http.StatusInternalServerError)
}
