// Package service holds the business rules of the rental backend: the
// contract overlap invariant, referential checks and payment
// aggregation.  Failures surface as one of three typed errors so the
// HTTP layer can map them to distinct status codes instead of guessing
// from strings.
package service

import "fmt"

// NotFoundError reports that a referenced entity does not exist.
// Handlers map it to HTTP 404.
type NotFoundError struct {
	Entity string // "tenant", "room", "contract", "payment"
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ValidationError reports bad input: a missing field, a non-positive
// amount, or dates out of order.  It is raised before any persistence
// step, so a validation failure never leaves partial state behind.
// Handlers map it to HTTP 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError reports that an operation collides with existing state:
// a contract overlapping an active one on the same room, or a delete
// blocked by dependent rows.  ContractID names the colliding contract
// when there is one.  Handlers map it to HTTP 409.
type ConflictError struct {
	Reason     string
	ContractID uint64
}

func (e *ConflictError) Error() string {
	if e.ContractID != 0 {
		return fmt.Sprintf("%s (contract id=%d)", e.Reason, e.ContractID)
	}
	return e.Reason
}
