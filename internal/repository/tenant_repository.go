package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"

	"github.com/Yohannes19/sbms/internal/model"
)

// TenantRepo provides CRUD operations over the tenants table.
type TenantRepo struct {
	db *sql.DB
}

// NewTenantRepo constructs a TenantRepo with the given DB handle.
func NewTenantRepo(db *sql.DB) *TenantRepo { return &TenantRepo{db: db} }

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *TenantRepo) DB() *sql.DB { return r.db }

// Create inserts a tenant and populates the generated ID and the
// DB-assigned created_at on the given struct.
func (r *TenantRepo) Create(ctx context.Context, t *model.Tenant) error {
	const q = `INSERT INTO tenants (name, email, phone) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Email, t.Phone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT id, name, email, phone, DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s') FROM tenants WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(&t.ID, &t.Name, &t.Email, &t.Phone, &t.CreatedAt)
}

// GetByID returns a tenant or ErrTenantNotFound.
func (r *TenantRepo) GetByID(ctx context.Context, id uint64) (*model.Tenant, error) {
	const q = `SELECT id, name, email, phone, DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s') FROM tenants WHERE id = ?`
	var t model.Tenant
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.Email, &t.Phone, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all tenants ordered newest-id first.  When no tenants
// exist it returns an empty slice and nil error.
func (r *TenantRepo) List(ctx context.Context) ([]model.Tenant, error) {
	const q = `SELECT id, name, email, phone, DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s') FROM tenants ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Tenant, 0)
	for rows.Next() {
		var t model.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Phone, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable tenant fields.  Returns
// ErrTenantNotFound when the row does not exist.
func (r *TenantRepo) Update(ctx context.Context, t *model.Tenant) error {
	const q = `UPDATE tenants SET name = ?, email = ?, phone = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Email, t.Phone, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 when the values were identical; confirm
		// the row exists before reporting not-found.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM tenants WHERE id = ? LIMIT 1`, t.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTenantNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a tenant.  With dependent contracts and cascade=false it
// returns ErrHasDependents.  With cascade=true it removes the tenant's
// contracts and their payments inside a single transaction, so a partial
// cleanup can never be observed.
func (r *TenantRepo) Delete(ctx context.Context, id uint64, cascade bool) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM tenants WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrTenantNotFound
		}
		return err
	}
	var contracts int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM contracts WHERE tenant_id = ?`, id).Scan(&contracts); err != nil {
		return err
	}
	if contracts > 0 {
		if !cascade {
			err = ErrHasDependents
			return err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM payments WHERE contract_id IN (SELECT id FROM contracts WHERE tenant_id = ?)`, id); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM contracts WHERE tenant_id = ?`, id); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM tenants WHERE id = ?`, id)
	return err
}

// Count returns the number of tenants, for the dashboard summary.
func (r *TenantRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&n)
	return n, err
}
