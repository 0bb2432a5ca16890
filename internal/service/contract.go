package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Yohannes19/sbms/internal/model"
	"github.com/Yohannes19/sbms/internal/repository"
)

// openEnd stands in for a missing end date when comparing intervals: an
// open-ended contract extends to the far future.
const openEnd = "9999-12-31"

const dateLayout = "2006-01-02"

// overlaps reports whether two inclusive date intervals share at least
// one day.  A nil end is treated as openEnd.  Dates are "YYYY-MM-DD"
// strings, which order lexicographically, so plain string comparison is
// exact.
func overlaps(aStart string, aEnd *string, bStart string, bEnd *string) bool {
	ae, be := openEnd, openEnd
	if aEnd != nil {
		ae = *aEnd
	}
	if bEnd != nil {
		be = *bEnd
	}
	return !(ae < bStart || be < aStart)
}

// roomLocks hands out one mutex per room so that the read-check-write
// sequence of the overlap check is serialized per room.  Two concurrent
// creates for the same room cannot both pass the check; creates for
// different rooms do not contend.
type roomLocks struct {
	mu sync.Mutex
	m  map[uint64]*sync.Mutex
}

func (l *roomLocks) lock(roomID uint64) *sync.Mutex {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[uint64]*sync.Mutex)
	}
	rm, ok := l.m[roomID]
	if !ok {
		rm = &sync.Mutex{}
		l.m[roomID] = rm
	}
	l.mu.Unlock()
	rm.Lock()
	return rm
}

// CreateContractInput carries the already-coerced fields for a new
// contract.  Dates are "YYYY-MM-DD"; a nil EndDate means open-ended.
type CreateContractInput struct {
	TenantID  uint64
	RoomID    uint64
	StartDate string
	EndDate   *string
	RentCents int64
}

// UpdateContractInput is a partial patch: nil fields are left
// untouched.  An EndDate pointing at the empty string clears the end
// date, making the contract open-ended.
type UpdateContractInput struct {
	StartDate *string
	EndDate   *string
	RentCents *int64
	Active    *bool
}

// ContractService enforces the contract lifecycle rules: rent
// positivity, date ordering, tenant/room referential checks and the
// per-room overlap invariant.
type ContractService struct {
	tenants   TenantStore
	rooms     RoomStore
	contracts ContractStore
	events    EventPublisher
	locks     roomLocks
}

// NewContractService wires a ContractService.  All stores must be
// non-nil; events may be nil to disable publishing.
func NewContractService(tenants TenantStore, rooms RoomStore, contracts ContractStore, events EventPublisher) *ContractService {
	if tenants == nil || rooms == nil || contracts == nil {
		panic("nil store passed to NewContractService")
	}
	return &ContractService{tenants: tenants, rooms: rooms, contracts: contracts, events: events}
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Create validates the input, verifies the tenant and room exist, runs
// the overlap check against the room's active contracts and persists
// the new contract with active=true.  The whole check-and-insert holds
// the room's lock, so on success the active set of the room is
// guaranteed pairwise non-overlapping even under concurrent creates.
func (s *ContractService) Create(ctx context.Context, in CreateContractInput) (*model.Contract, error) {
	if in.RentCents <= 0 {
		return nil, &ValidationError{Field: "rent_amount", Reason: "must be greater than 0"}
	}
	if in.StartDate == "" {
		return nil, &ValidationError{Field: "start_date", Reason: "is required"}
	}
	if !validDate(in.StartDate) {
		return nil, &ValidationError{Field: "start_date", Reason: "must be a date like 2025-01-01"}
	}
	if in.EndDate != nil {
		if !validDate(*in.EndDate) {
			return nil, &ValidationError{Field: "end_date", Reason: "must be a date like 2025-12-31"}
		}
		if *in.EndDate < in.StartDate {
			return nil, &ValidationError{Field: "end_date", Reason: "must be the same or after start_date"}
		}
	}

	lock := s.locks.lock(in.RoomID)
	defer lock.Unlock()

	if _, err := s.tenants.GetByID(ctx, in.TenantID); err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			return nil, &NotFoundError{Entity: "tenant", ID: in.TenantID}
		}
		return nil, err
	}
	if _, err := s.rooms.GetByID(ctx, in.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, &NotFoundError{Entity: "room", ID: in.RoomID}
		}
		return nil, err
	}

	existing, err := s.contracts.ListActiveByRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if overlaps(in.StartDate, in.EndDate, c.StartDate, c.EndDate) {
			return nil, &ConflictError{Reason: "dates overlap an active contract on this room", ContractID: c.ID}
		}
	}

	contract := &model.Contract{
		TenantID:  in.TenantID,
		RoomID:    in.RoomID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		RentCents: in.RentCents,
		Active:    true,
	}
	if err := s.contracts.Insert(ctx, contract); err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.ContractSigned(ctx, contract)
	}
	return contract, nil
}

// Get returns one contract or NotFoundError.
func (s *ContractService) Get(ctx context.Context, id uint64) (*model.Contract, error) {
	c, err := s.contracts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContractNotFound) {
			return nil, &NotFoundError{Entity: "contract", ID: id}
		}
		return nil, err
	}
	return c, nil
}

// List returns all contracts, newest-id first.
func (s *ContractService) List(ctx context.Context) ([]model.Contract, error) {
	return s.contracts.List(ctx)
}

// Update applies a partial patch.  Whenever the patch touches the
// dates or the active flag and the resulting contract is active, the
// overlap check is re-run against the room's other active contracts —
// editing or reactivating a contract cannot smuggle an overlap past
// the invariant.  The persisted row is re-fetched and returned.
func (s *ContractService) Update(ctx context.Context, id uint64, in UpdateContractInput) (*model.Contract, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *cur
	guard := false
	if in.StartDate != nil && *in.StartDate != next.StartDate {
		if !validDate(*in.StartDate) {
			return nil, &ValidationError{Field: "start_date", Reason: "must be a date like 2025-01-01"}
		}
		next.StartDate = *in.StartDate
		guard = true
	}
	if in.EndDate != nil {
		if *in.EndDate == "" {
			if next.EndDate != nil {
				next.EndDate = nil
				guard = true
			}
		} else {
			if !validDate(*in.EndDate) {
				return nil, &ValidationError{Field: "end_date", Reason: "must be a date like 2025-12-31"}
			}
			if next.EndDate == nil || *next.EndDate != *in.EndDate {
				end := *in.EndDate
				next.EndDate = &end
				guard = true
			}
		}
	}
	if next.EndDate != nil && *next.EndDate < next.StartDate {
		return nil, &ValidationError{Field: "end_date", Reason: "must be the same or after start_date"}
	}
	if in.RentCents != nil {
		if *in.RentCents <= 0 {
			return nil, &ValidationError{Field: "rent_amount", Reason: "must be greater than 0"}
		}
		next.RentCents = *in.RentCents
	}
	if in.Active != nil && *in.Active != next.Active {
		next.Active = *in.Active
		guard = true
	}

	if guard && next.Active {
		lock := s.locks.lock(next.RoomID)
		defer lock.Unlock()
		others, err := s.contracts.ListActiveByRoom(ctx, next.RoomID)
		if err != nil {
			return nil, err
		}
		for _, c := range others {
			if c.ID == next.ID {
				continue
			}
			if overlaps(next.StartDate, next.EndDate, c.StartDate, c.EndDate) {
				return nil, &ConflictError{Reason: "dates overlap an active contract on this room", ContractID: c.ID}
			}
		}
	}

	if err := s.contracts.Update(ctx, &next); err != nil {
		if errors.Is(err, repository.ErrContractNotFound) {
			return nil, &NotFoundError{Entity: "contract", ID: id}
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a contract.  A contract that still has payments is
// only deleted when the caller explicitly asks for a cascade; otherwise
// the delete is rejected with a ConflictError so payment history cannot
// be orphaned by accident.
func (s *ContractService) Delete(ctx context.Context, id uint64, cascade bool) error {
	err := s.contracts.Delete(ctx, id, cascade)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrContractNotFound):
		return &NotFoundError{Entity: "contract", ID: id}
	case errors.Is(err, repository.ErrHasDependents):
		return &ConflictError{Reason: "contract has payments; pass cascade=true to delete them as well", ContractID: id}
	default:
		return err
	}
}
