package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Yohannes19/sbms/internal/model"
)

const paymentCols = `id, contract_id, amount_cents, DATE_FORMAT(paid_at, '%Y-%m-%d %H:%i:%s'), method, note`

// PaymentRepo manages persistence for rent payments.  Payments are
// append-only: there is intentionally no Update method.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo constructs a PaymentRepo with the given DB handle.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func scanPayment(row interface{ Scan(...any) error }) (*model.Payment, error) {
	var p model.Payment
	if err := row.Scan(&p.ID, &p.ContractID, &p.AmountCents, &p.PaidAt, &p.Method, &p.Note); err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert persists a payment.  paid_at is assigned by the database
// (CURRENT_TIMESTAMP) and read back along with the generated ID.
func (r *PaymentRepo) Insert(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (contract_id, amount_cents, method, note) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.ContractID, p.AmountCents, p.Method, p.Note)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT ` + paymentCols + ` FROM payments WHERE id = ?`
	fresh, err := scanPayment(r.db.QueryRowContext(ctx, sel, p.ID))
	if err != nil {
		return err
	}
	*p = *fresh
	return nil
}

// Get returns a payment by ID or ErrPaymentNotFound.
func (r *PaymentRepo) Get(ctx context.Context, id uint64) (*model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments WHERE id = ?`
	p, err := scanPayment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns every payment ordered most recent first.
func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments ORDER BY paid_at DESC, id DESC`
	return r.queryPayments(ctx, q)
}

// ListByContract returns the payments of one contract, most recent
// first.
func (r *PaymentRepo) ListByContract(ctx context.Context, contractID uint64) ([]model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments WHERE contract_id = ? ORDER BY paid_at DESC, id DESC`
	return r.queryPayments(ctx, q, contractID)
}

func (r *PaymentRepo) queryPayments(ctx context.Context, q string, args ...any) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SumByContract returns the exact total paid against a contract in
// cents.  COALESCE keeps the result 0 (not NULL) for contracts without
// payments, and the sum stays in integer arithmetic end to end.
func (r *PaymentRepo) SumByContract(ctx context.Context, contractID uint64) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE contract_id = ?`,
		contractID).Scan(&total)
	return total, err
}

// Delete removes a payment or returns ErrPaymentNotFound.
func (r *PaymentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// TotalCollected returns the sum of all payments in cents, for the
// dashboard summary.
func (r *PaymentRepo) TotalCollected(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM payments`).Scan(&total)
	return total, err
}
