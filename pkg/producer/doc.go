// Package producer implements the asynchronous result abstraction of
// sluice: a Producer is a cold source of zero-or-one eventual value (or a
// failure), composed with operators and terminated by subscription.
//
// A producer does nothing until subscribed. Subscribe launches a worker
// goroutine, runs the whole transformation chain there, and delivers a
// single terminal Outcome exactly once. The caller's stack never blocks on
// upstream IO; it waits on the subscription's Done channel, or walks away
// and cancels.
//
// Operators are package-level generic functions (methods cannot introduce
// type parameters):
//
//	book := producer.Map(store.Get("42"), decodeBook)
//	page := producer.Zip(listBooks, countBooks, makePage)
//	safe := producer.OnErrorReturn(page, emptyPage)
//
// Plain producers are restartable: each subscription is independent and
// re-runs the chain. Wrap one in Once to enforce single consumption.
package producer
