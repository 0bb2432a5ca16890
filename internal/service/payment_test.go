package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yohannes19/sbms/internal/money"
)

func paymentFixture(t *testing.T) (*fixture, *PaymentService, uint64) {
	t.Helper()
	f := newFixture(t)
	svc := NewPaymentService(f.contracts, f.payments, nil)
	c, err := f.svc.Create(context.Background(), CreateContractInput{
		TenantID: f.tenantID, RoomID: f.roomID,
		StartDate: "2025-01-01", EndDate: strp("2025-12-31"), RentCents: 50000,
	})
	require.NoError(t, err)
	return f, svc, c.ID
}

func TestPaymentCreate(t *testing.T) {
	_, svc, contractID := paymentFixture(t)
	ctx := context.Background()

	method := "bank"
	p, err := svc.Create(ctx, CreatePaymentInput{
		ContractID:  contractID,
		AmountCents: 50000,
		Method:      &method,
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.NotEmpty(t, p.PaidAt, "paid_at is assigned server-side")
	assert.Equal(t, int64(50000), p.AmountCents)
}

func TestPaymentCreateValidation(t *testing.T) {
	_, svc, contractID := paymentFixture(t)
	ctx := context.Background()

	t.Run("zero amount", func(t *testing.T) {
		_, err := svc.Create(ctx, CreatePaymentInput{ContractID: contractID, AmountCents: 0})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "amount", verr.Field)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := svc.Create(ctx, CreatePaymentInput{ContractID: contractID, AmountCents: -100})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown contract", func(t *testing.T) {
		_, err := svc.Create(ctx, CreatePaymentInput{ContractID: 9999, AmountCents: 100})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "contract", nf.Entity)
	})
}

func TestPaymentTotalPaid(t *testing.T) {
	_, svc, contractID := paymentFixture(t)
	ctx := context.Background()

	total, err := svc.TotalPaid(ctx, contractID)
	require.NoError(t, err)
	assert.Zero(t, total, "no payments yet")

	for _, s := range []string{"500.00", "250.50"} {
		cents, err := money.ParseCents(s)
		require.NoError(t, err)
		_, err = svc.Create(ctx, CreatePaymentInput{ContractID: contractID, AmountCents: cents})
		require.NoError(t, err)
	}

	total, err = svc.TotalPaid(ctx, contractID)
	require.NoError(t, err)
	assert.Equal(t, int64(75050), total)
	assert.Equal(t, "750.50", money.FormatCents(total))
}

func TestPaymentListByContract(t *testing.T) {
	f, svc, contractID := paymentFixture(t)
	ctx := context.Background()

	// a second contract whose payments must not bleed into the list
	other, err := f.svc.Create(ctx, CreateContractInput{
		TenantID: f.tenantID, RoomID: f.roomID,
		StartDate: "2026-01-01", EndDate: strp("2026-12-31"), RentCents: 50000,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, CreatePaymentInput{ContractID: contractID, AmountCents: 10000})
		require.NoError(t, err)
	}
	_, err = svc.Create(ctx, CreatePaymentInput{ContractID: other.ID, AmountCents: 99})
	require.NoError(t, err)

	got, err := svc.ListByContract(ctx, contractID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, contractID, p.ContractID)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.ListByContract(ctx, 9999)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestPaymentGetAndDelete(t *testing.T) {
	_, svc, contractID := paymentFixture(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreatePaymentInput{ContractID: contractID, AmountCents: 12345})
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err = svc.Get(ctx, p.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "payment", nf.Entity)

	err = svc.Delete(ctx, p.ID)
	assert.ErrorAs(t, err, &nf)

	total, err := svc.TotalPaid(ctx, contractID)
	require.NoError(t, err)
	assert.Zero(t, total, "deleted payment no longer counts")
}

func TestPaymentCreatePublishesEvent(t *testing.T) {
	f, _, contractID := paymentFixture(t)
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewPaymentService(f.contracts, f.payments, pub)

	p, err := svc.Create(ctx, CreatePaymentInput{ContractID: contractID, AmountCents: 100})
	require.NoError(t, err)
	require.Len(t, pub.payments, 1)
	assert.Equal(t, p.ID, pub.payments[0])
}
