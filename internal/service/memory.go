package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Yohannes19/sbms/internal/model"
	"github.com/Yohannes19/sbms/internal/repository"
)

// In-memory store implementations.  They mirror the SQL repositories
// closely enough to back the service tests and local experiments
// without a database: same sentinel errors, same ordering guarantees.

func nowStamp() string { return time.Now().UTC().Format("2006-01-02 15:04:05") }

// MemTenantStore is a map-backed TenantStore.
type MemTenantStore struct {
	mu   sync.Mutex
	m    map[uint64]model.Tenant
	next uint64
}

// NewMemTenantStore returns an empty in-memory tenant store.
func NewMemTenantStore() *MemTenantStore {
	return &MemTenantStore{m: make(map[uint64]model.Tenant)}
}

// Put assigns an ID and stores the tenant; handy for seeding tests.
func (s *MemTenantStore) Put(t model.Tenant) model.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	t.ID = s.next
	if t.CreatedAt == "" {
		t.CreatedAt = nowStamp()
	}
	s.m[t.ID] = t
	return t
}

func (s *MemTenantStore) GetByID(_ context.Context, id uint64) (*model.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.m[id]
	if !ok {
		return nil, repository.ErrTenantNotFound
	}
	return &t, nil
}

// MemRoomStore is a map-backed RoomStore.
type MemRoomStore struct {
	mu   sync.Mutex
	m    map[uint64]model.Room
	next uint64
}

// NewMemRoomStore returns an empty in-memory room store.
func NewMemRoomStore() *MemRoomStore {
	return &MemRoomStore{m: make(map[uint64]model.Room)}
}

// Put assigns an ID and stores the room.
func (s *MemRoomStore) Put(r model.Room) model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	r.ID = s.next
	s.m[r.ID] = r
	return r
}

func (s *MemRoomStore) GetByID(_ context.Context, id uint64) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.m[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &r, nil
}

// MemPaymentStore is a map-backed PaymentStore.
type MemPaymentStore struct {
	mu   sync.Mutex
	m    map[uint64]model.Payment
	next uint64
}

// NewMemPaymentStore returns an empty in-memory payment store.
func NewMemPaymentStore() *MemPaymentStore {
	return &MemPaymentStore{m: make(map[uint64]model.Payment)}
}

func (s *MemPaymentStore) Insert(_ context.Context, p *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	p.ID = s.next
	p.PaidAt = nowStamp()
	s.m[p.ID] = *p
	return nil
}

func (s *MemPaymentStore) Get(_ context.Context, id uint64) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}
	return &p, nil
}

func (s *MemPaymentStore) List(_ context.Context) ([]model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Payment, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemPaymentStore) ListByContract(_ context.Context, contractID uint64) ([]model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Payment, 0)
	for _, p := range s.m {
		if p.ContractID == contractID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemPaymentStore) SumByContract(_ context.Context, contractID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, p := range s.m {
		if p.ContractID == contractID {
			total += p.AmountCents
		}
	}
	return total, nil
}

func (s *MemPaymentStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return repository.ErrPaymentNotFound
	}
	delete(s.m, id)
	return nil
}

func (s *MemPaymentStore) deleteByContract(contractID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.m {
		if p.ContractID == contractID {
			delete(s.m, id)
		}
	}
}

func (s *MemPaymentStore) countByContract(contractID uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.m {
		if p.ContractID == contractID {
			n++
		}
	}
	return n
}

// MemContractStore is a map-backed ContractStore.  It shares the
// payment store so the guarded delete sees dependent payments the same
// way the SQL implementation does.
type MemContractStore struct {
	mu       sync.Mutex
	m        map[uint64]model.Contract
	next     uint64
	payments *MemPaymentStore
}

// NewMemContractStore returns an empty in-memory contract store backed
// by the given payment store.
func NewMemContractStore(payments *MemPaymentStore) *MemContractStore {
	if payments == nil {
		panic("nil payment store passed to NewMemContractStore")
	}
	return &MemContractStore{m: make(map[uint64]model.Contract), payments: payments}
}

func (s *MemContractStore) Insert(_ context.Context, c *model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	c.ID = s.next
	c.CreatedAt = nowStamp()
	c.UpdatedAt = c.CreatedAt
	s.m[c.ID] = *c
	return nil
}

func (s *MemContractStore) Get(_ context.Context, id uint64) (*model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.m[id]
	if !ok {
		return nil, repository.ErrContractNotFound
	}
	return &c, nil
}

func (s *MemContractStore) List(_ context.Context) ([]model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Contract, 0, len(s.m))
	for _, c := range s.m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemContractStore) ListActiveByRoom(_ context.Context, roomID uint64) ([]model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Contract, 0)
	for _, c := range s.m {
		if c.RoomID == roomID && c.Active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out, nil
}

func (s *MemContractStore) Update(_ context.Context, c *model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[c.ID]; !ok {
		return repository.ErrContractNotFound
	}
	c.UpdatedAt = nowStamp()
	s.m[c.ID] = *c
	return nil
}

func (s *MemContractStore) Delete(_ context.Context, id uint64, cascade bool) error {
	s.mu.Lock()
	_, ok := s.m[id]
	s.mu.Unlock()
	if !ok {
		return repository.ErrContractNotFound
	}
	if s.payments.countByContract(id) > 0 {
		if !cascade {
			return repository.ErrHasDependents
		}
		s.payments.deleteByContract(id)
	}
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
	return nil
}
