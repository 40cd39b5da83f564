package kernel

import (
	"sort"

	"orders/internal/pkg/errs"
)

// ErrScopeIsNotConstructed is returned when validating a zero-value Scope.
// An unresolved scope authorizes nothing, so it unwraps to Unauthorized.
var ErrScopeIsNotConstructed = errs.NewUnauthorizedError(
	"Scope must be created via NewScope")

// Scope is the set of vendor ids a caller is authorized to see and mutate.
// It is an ephemeral per-request value, never persisted. Every aggregation
// and transition operation requires a resolved Scope; an empty vendor set is
// rejected at construction with Unauthorized so "not allowed to look" can
// never masquerade as "nothing matched".
type Scope struct {
	vendorIDs     map[UUID]struct{}
	isConstructed bool
}

// NewScope builds a Scope from the caller's authorized vendor ids.
func NewScope(vendorIDs ...UUID) (Scope, error) {
	if len(vendorIDs) == 0 {
		return Scope{}, errs.NewUnauthorizedError("caller is not a vendor for anything")
	}

	set := make(map[UUID]struct{}, len(vendorIDs))
	for _, id := range vendorIDs {
		if err := id.Validate(); err != nil {
			return Scope{}, err
		}
		set[id] = struct{}{}
	}
	return Scope{vendorIDs: set, isConstructed: true}, nil
}

// Validate rejects zero-value scopes.
func (s Scope) Validate() error {
	if !s.isConstructed {
		return ErrScopeIsNotConstructed
	}
	return nil
}

// Authorizes reports whether the vendor is within scope.
func (s Scope) Authorizes(vendorID UUID) bool {
	_, ok := s.vendorIDs[vendorID]
	return ok
}

// Narrow restricts the scope to a single vendor, failing with Unauthorized
// when that vendor is not covered. Used when a caller explicitly filters by
// one of its vendors.
func (s Scope) Narrow(vendorID UUID) (Scope, error) {
	if err := s.Validate(); err != nil {
		return Scope{}, err
	}
	if !s.Authorizes(vendorID) {
		return Scope{}, errs.NewUnauthorizedError("vendor is not within the caller's scope")
	}
	return NewScope(vendorID)
}

// VendorIDs returns the covered vendors in a deterministic order, for use in
// store predicates.
func (s Scope) VendorIDs() []UUID {
	ids := make([]UUID, 0, len(s.vendorIDs))
	for id := range s.vendorIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
