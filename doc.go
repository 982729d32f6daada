/*
Package sluice is an asynchronous controller-dispatch core for HTTP hosts.

A controller action returns a producer of a response action instead of
writing the response itself. The dispatcher subscribes to that producer on
a worker goroutine, waits for its single terminal result, and applies
exactly one response action to the exchange: the produced value, a
configured default when the producer completes empty, or an error-derived
action on failure.

# Concept

Sluice separates three concerns. Producers (pkg/producer) describe how an
eventual result is computed and combined: map a fetched record to a
response, zip a page with its count, fall back when a lookup comes up
empty. The dispatcher (this package) owns the terminal step: it guards the
exchange with a completion flag so the "exactly one response per request"
invariant holds even with late or duplicated events, and it routes
failures through registered per-category handlers. Adapters
(pkg/adapters) bind the two to a concrete host: a chi HTTP router on one
side, redis or in-memory document sources on the other.

# Usage

	disp := sluice.New(
		sluice.WithLogger(logger),
		sluice.WithDefaultAction(domain.Respond(nil, http.StatusNotFound)),
		sluice.WithTimeout(5*time.Second),
	)

	action := func(req domain.ExchangeContext) producer.Producer[domain.Action] {
		book := books.Get(req.Param("id"))
		return producer.Map(book, func(b []byte) domain.Action {
			return domain.Respond(json.RawMessage(b), http.StatusOK)
		})
	}

	r := chi.NewRouter()
	r.Get("/books/{id}", binder.Handle(action))

Request state crosses the asynchronous boundary only as an immutable
ExchangeContext snapshot, captured before subscription; worker-side stages
never touch the live request.
*/
package sluice
