// Package orderlock serializes mutations per order. Every handler that
// writes a booking acquires the owning order's lock around its
// read-modify-persist sequence, so a full-row update can never overwrite a
// state change committed by a concurrent writer and aggregate derivation
// never races with a booking update. Reads for display do not take the lock.
package orderlock

import (
	"sync"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// Registry holds one advisory lock per order id. Locks are created lazily and
// kept for the registry's lifetime; the entry count is bounded by the number
// of distinct orders mutated by this process.
type Registry struct {
	mu    sync.Mutex
	locks map[kernel.UUID]*sync.Mutex
}

// NewRegistry creates an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{locks: make(map[kernel.UUID]*sync.Mutex)}
}

func (r *Registry) lockFor(orderID kernel.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[orderID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[orderID] = l
	}
	return l
}

// Acquire takes the order's lock, failing fast with ConcurrentModification
// when another transition holds it. The returned release function must be
// called exactly once.
func (r *Registry) Acquire(orderID kernel.UUID) (release func(), err error) {
	if validateErr := orderID.Validate(); validateErr != nil {
		return nil, validateErr
	}

	l := r.lockFor(orderID)
	if !l.TryLock() {
		return nil, errs.NewConcurrentModificationError(orderID.String())
	}
	return l.Unlock, nil
}
