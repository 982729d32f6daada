// Package ports defines the boundary interfaces of the sluice core:
// how a response action is applied to the outside world (Applier,
// Renderer) and how upstream data collaborators expose asynchronous
// results (DocumentSource, a producer-returning store).
//
// The core never writes HTTP bytes or performs IO itself; adapters
// implement these ports.
package ports
