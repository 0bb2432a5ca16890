package service

import (
	"context"
	"errors"

	"github.com/Yohannes19/sbms/internal/model"
	"github.com/Yohannes19/sbms/internal/repository"
)

// CreatePaymentInput carries the already-coerced fields for a new
// payment.  The paid_at timestamp is assigned server-side, never taken
// from the client.
type CreatePaymentInput struct {
	ContractID  uint64
	AmountCents int64
	Method      *string
	Note        *string
}

// PaymentService records rent payments and aggregates them per
// contract.  Sums are exact: amounts are integer cents all the way
// down, so no currency value ever rounds through a float.
type PaymentService struct {
	contracts ContractStore
	payments  PaymentStore
	events    EventPublisher
}

// NewPaymentService wires a PaymentService.  Stores must be non-nil;
// events may be nil to disable publishing.
func NewPaymentService(contracts ContractStore, payments PaymentStore, events EventPublisher) *PaymentService {
	if contracts == nil || payments == nil {
		panic("nil store passed to NewPaymentService")
	}
	return &PaymentService{contracts: contracts, payments: payments, events: events}
}

// Create validates the amount, verifies the contract exists and
// persists the payment.  The recorded event goes out best effort after
// the commit.
func (s *PaymentService) Create(ctx context.Context, in CreatePaymentInput) (*model.Payment, error) {
	if in.AmountCents <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}
	if _, err := s.contracts.Get(ctx, in.ContractID); err != nil {
		if errors.Is(err, repository.ErrContractNotFound) {
			return nil, &NotFoundError{Entity: "contract", ID: in.ContractID}
		}
		return nil, err
	}
	payment := &model.Payment{
		ContractID:  in.ContractID,
		AmountCents: in.AmountCents,
		Method:      in.Method,
		Note:        in.Note,
	}
	if err := s.payments.Insert(ctx, payment); err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.PaymentRecorded(ctx, payment)
	}
	return payment, nil
}

// Get returns one payment or NotFoundError.
func (s *PaymentService) Get(ctx context.Context, id uint64) (*model.Payment, error) {
	p, err := s.payments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, &NotFoundError{Entity: "payment", ID: id}
		}
		return nil, err
	}
	return p, nil
}

// List returns all payments, most recent first.
func (s *PaymentService) List(ctx context.Context) ([]model.Payment, error) {
	return s.payments.List(ctx)
}

// ListByContract returns a contract's payments, most recent first.
// The contract must exist.
func (s *PaymentService) ListByContract(ctx context.Context, contractID uint64) ([]model.Payment, error) {
	if _, err := s.contracts.Get(ctx, contractID); err != nil {
		if errors.Is(err, repository.ErrContractNotFound) {
			return nil, &NotFoundError{Entity: "contract", ID: contractID}
		}
		return nil, err
	}
	return s.payments.ListByContract(ctx, contractID)
}

// TotalPaid returns the exact sum in cents of all payments against a
// contract.  A contract without payments totals 0, never an error.
func (s *PaymentService) TotalPaid(ctx context.Context, contractID uint64) (int64, error) {
	return s.payments.SumByContract(ctx, contractID)
}

// Delete removes a payment or returns NotFoundError.
func (s *PaymentService) Delete(ctx context.Context, id uint64) error {
	err := s.payments.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return &NotFoundError{Entity: "payment", ID: id}
		}
		return err
	}
	return nil
}
