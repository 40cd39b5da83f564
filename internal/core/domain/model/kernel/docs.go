// Package kernel contains the shared value objects of the orders domain:
// UUID identities, currency-tagged Money amounts, VAT rates and the
// vendor Scope used to authorize every aggregation and transition call.
//
// All kernel types are immutable value objects constructed through factory
// functions that enforce their invariants. Zero values are invalid and are
// rejected by each type's Validate method.
package kernel
