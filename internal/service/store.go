package service

import (
	"context"

	"github.com/Yohannes19/sbms/internal/model"
)

// The services talk to persistence through these narrow interfaces.
// The production implementations live in internal/repository over
// *sql.DB; the in-memory ones in memory.go back the tests and local
// seeding.  Absent rows are signalled with the repository sentinel
// errors (repository.ErrContractNotFound and friends).

// TenantStore is the slice of tenant persistence the services need.
type TenantStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Tenant, error)
}

// RoomStore is the slice of room persistence the services need.
type RoomStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
}

// ContractStore persists contracts and answers the queries behind the
// overlap check and the guarded delete.
type ContractStore interface {
	Insert(ctx context.Context, c *model.Contract) error
	Get(ctx context.Context, id uint64) (*model.Contract, error)
	List(ctx context.Context) ([]model.Contract, error)
	ListActiveByRoom(ctx context.Context, roomID uint64) ([]model.Contract, error)
	Update(ctx context.Context, c *model.Contract) error
	Delete(ctx context.Context, id uint64, cascade bool) error
}

// EventPublisher fans domain events out to the message broker.
// Publishing is best effort: implementations log failures and never
// propagate them into the request path.  A nil publisher disables
// events.
type EventPublisher interface {
	ContractSigned(ctx context.Context, c *model.Contract)
	PaymentRecorded(ctx context.Context, p *model.Payment)
}

// PaymentStore persists payments.  There is no update: payments are
// append-only.
type PaymentStore interface {
	Insert(ctx context.Context, p *model.Payment) error
	Get(ctx context.Context, id uint64) (*model.Payment, error)
	List(ctx context.Context) ([]model.Payment, error)
	ListByContract(ctx context.Context, contractID uint64) ([]model.Payment, error)
	SumByContract(ctx context.Context, contractID uint64) (int64, error)
	Delete(ctx context.Context, id uint64) error
}
