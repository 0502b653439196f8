// Package canvas defines the atomic unit of screen real estate and the
// fixed-capacity registry that every layout allocates from.
//
// A [Canvas] couples a rectangle with a [Trust] level and a mutable clip
// rectangle. Canvases are named by opaque [ID] values minted by an
// [IDSource]; identifiers are compared for equality and never ordered or
// interpreted.
//
// # Registry
//
// [Registry] is a pre-sized arena: a flat slice allocated once at the
// configured capacity and never grown. Insertion beyond capacity fails with a
// CAPACITY_EXCEEDED error and leaves the registry unchanged. There is no
// delete; the owner tears the whole registry down when the shell exits.
//
// The registry has no internal locking. Callers serialize every create, clear
// and resize against a given registry; pkg/shell provides that wrapper.
package canvas
