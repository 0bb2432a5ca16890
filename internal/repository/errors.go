// Package repository defines sentinel errors shared across the entity
// repositories.  Services and handlers compare against these values to
// tell apart the different failure scenarios: a missing row, a
// uniqueness violation, or dependent rows blocking a delete.
package repository

import "errors"

// ErrTenantNotFound is returned when a tenant lookup finds no row.
var ErrTenantNotFound = errors.New("tenant not found")

// ErrRoomNotFound is returned when a room lookup finds no row.
var ErrRoomNotFound = errors.New("room not found")

// ErrContractNotFound is returned when a contract lookup finds no row.
var ErrContractNotFound = errors.New("contract not found")

// ErrPaymentNotFound is returned when a payment lookup finds no row.
var ErrPaymentNotFound = errors.New("payment not found")

// ErrUsernameExists is returned when user creation hits the unique
// username index.
var ErrUsernameExists = errors.New("username already exists")

// ErrHasDependents is returned when a delete is blocked by rows that
// still reference the target (contracts on a tenant or room, payments
// on a contract) and the caller did not ask for a cascade.  Handlers
// translate this into an HTTP 409 response.
var ErrHasDependents = errors.New("has dependent records")
