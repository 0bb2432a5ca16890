// This file defines the repository for lease contracts.  A contract
// binds one tenant to one room for a date interval; among the active
// contracts of a room the intervals must not overlap.  The overlap rule
// itself lives in the service layer — the repository only persists rows
// and answers the queries the service needs.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Yohannes19/sbms/internal/model"
)

// Dates and timestamps go through DATE_FORMAT so they scan as plain
// strings regardless of the driver's parseTime setting.
const contractCols = `id, tenant_id, room_id, DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'), rent_cents, active, DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s')`

// ContractRepo manages persistence for contracts.
type ContractRepo struct {
	db *sql.DB
}

// NewContractRepo constructs a ContractRepo with the given DB handle.
func NewContractRepo(db *sql.DB) *ContractRepo { return &ContractRepo{db: db} }

// DB exposes the underlying sql.DB for callers that need transactions
// spanning multiple repositories.
func (r *ContractRepo) DB() *sql.DB { return r.db }

func scanContract(row interface{ Scan(...any) error }) (*model.Contract, error) {
	var c model.Contract
	if err := row.Scan(&c.ID, &c.TenantID, &c.RoomID, &c.StartDate, &c.EndDate, &c.RentCents, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert persists a new contract and populates the generated ID plus the
// DB-default fields (created_at, updated_at) on the given struct.
func (r *ContractRepo) Insert(ctx context.Context, c *model.Contract) error {
	const q = `INSERT INTO contracts (tenant_id, room_id, start_date, end_date, rent_cents, active) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.TenantID, c.RoomID, c.StartDate, c.EndDate, c.RentCents, c.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT ` + contractCols + ` FROM contracts WHERE id = ?`
	fresh, err := scanContract(r.db.QueryRowContext(ctx, sel, c.ID))
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// Get returns a contract by ID or ErrContractNotFound.
func (r *ContractRepo) Get(ctx context.Context, id uint64) (*model.Contract, error) {
	const q = `SELECT ` + contractCols + ` FROM contracts WHERE id = ?`
	c, err := scanContract(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns every contract ordered newest-id first.  When no
// contracts exist it returns an empty slice and nil error.
func (r *ContractRepo) List(ctx context.Context) ([]model.Contract, error) {
	const q = `SELECT ` + contractCols + ` FROM contracts ORDER BY id DESC`
	return r.queryContracts(ctx, q)
}

// ListActiveByRoom returns the active contracts for one room ordered by
// start date.  The service layer runs the overlap check over this set.
func (r *ContractRepo) ListActiveByRoom(ctx context.Context, roomID uint64) ([]model.Contract, error) {
	const q = `SELECT ` + contractCols + ` FROM contracts WHERE room_id = ? AND active = 1 ORDER BY start_date ASC`
	return r.queryContracts(ctx, q, roomID)
}

func (r *ContractRepo) queryContracts(ctx context.Context, q string, args ...any) ([]model.Contract, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable contract fields and bumps updated_at.
// Returns ErrContractNotFound when the row does not exist.
func (r *ContractRepo) Update(ctx context.Context, c *model.Contract) error {
	const q = `UPDATE contracts
	           SET tenant_id = ?, room_id = ?, start_date = ?, end_date = ?, rent_cents = ?, active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.TenantID, c.RoomID, c.StartDate, c.EndDate, c.RentCents, c.Active, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM contracts WHERE id = ? LIMIT 1`, c.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrContractNotFound
			}
			return err
		}
	}
	return nil
}

// HasPayments reports whether any payment rows reference the contract.
func (r *ContractRepo) HasPayments(ctx context.Context, id uint64) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE contract_id = ?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a contract.  With dependent payments and cascade=false
// it returns ErrHasDependents.  With cascade=true the payments are
// removed first, all inside one transaction so no partial cleanup is
// ever visible.
func (r *ContractRepo) Delete(ctx context.Context, id uint64, cascade bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM contracts WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrContractNotFound
		}
		return err
	}
	var payments int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE contract_id = ?`, id).Scan(&payments); err != nil {
		return err
	}
	if payments > 0 {
		if !cascade {
			err = ErrHasDependents
			return err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM payments WHERE contract_id = ?`, id); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	return err
}

// CountActive returns the number of active contracts, for the dashboard
// summary.
func (r *ContractRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contracts WHERE active = 1`).Scan(&n)
	return n, err
}
