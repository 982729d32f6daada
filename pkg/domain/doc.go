// Package domain defines the core value types of the sluice library:
// response actions, the request snapshot (ExchangeContext), the combined
// page result, and the error taxonomy shared by producers, the dispatcher
// and the adapters.
//
// Everything here is a plain value type with no goroutines and no IO.
// Actions are immutable by convention: constructors copy their inputs and
// consumers never mutate them.
package domain
