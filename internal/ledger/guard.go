package ledger

import "sync/atomic"

// guard is the single marketplace-wide reentrancy lock. Operations that move
// value out of the marketplace take it for their whole duration, so a
// recipient hook that calls back into a guarded operation is rejected while
// the outer one is in flight.
type guard struct {
	locked atomic.Bool
}

// enter acquires the lock. It reports false when another guarded operation
// is already in flight.
func (g *guard) enter() bool {
	return g.locked.CompareAndSwap(false, true)
}

// exit releases the lock. Must run on every exit path of a guarded
// operation.
func (g *guard) exit() {
	g.locked.Store(false)
}
