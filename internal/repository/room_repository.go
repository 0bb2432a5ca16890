package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Yohannes19/sbms/internal/model"
)

// RoomRepo provides CRUD operations over the rooms table.  Amenities are
// stored as a single comma-separated column and split/joined here so the
// rest of the application only sees []string.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

func joinAmenities(a []string) string { return strings.Join(a, ",") }

func splitAmenities(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Create inserts a room and populates the generated ID.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (number, floor, capacity, price_cents, amenities, active) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.Number, rm.Floor, rm.Capacity, rm.PriceCents, joinAmenities(rm.Amenities), rm.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var rm model.Room
	var amenities string
	if err := row.Scan(&rm.ID, &rm.Number, &rm.Floor, &rm.Capacity, &rm.PriceCents, &amenities, &rm.Active); err != nil {
		return nil, err
	}
	rm.Amenities = splitAmenities(amenities)
	return &rm, nil
}

// GetByID returns a room or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, number, floor, capacity, price_cents, amenities, active FROM rooms WHERE id = ?`
	rm, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return rm, nil
}

// List returns all rooms ordered newest-id first.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, number, floor, capacity, price_cents, amenities, active FROM rooms ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable room fields.  Returns ErrRoomNotFound
// when the row does not exist.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms SET number = ?, floor = ?, capacity = ?, price_cents = ?, amenities = ?, active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rm.Number, rm.Floor, rm.Capacity, rm.PriceCents, joinAmenities(rm.Amenities), rm.Active, rm.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ? LIMIT 1`, rm.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRoomNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a room.  With dependent contracts and cascade=false it
// returns ErrHasDependents; with cascade=true the contracts and their
// payments go too, inside one transaction.
func (r *RoomRepo) Delete(ctx context.Context, id uint64, cascade bool) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrRoomNotFound
		}
		return err
	}
	var contracts int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM contracts WHERE room_id = ?`, id).Scan(&contracts); err != nil {
		return err
	}
	if contracts > 0 {
		if !cascade {
			err = ErrHasDependents
			return err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM payments WHERE contract_id IN (SELECT id FROM contracts WHERE room_id = ?)`, id); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM contracts WHERE room_id = ?`, id); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	return err
}

// Count returns the number of rooms, for the dashboard summary.
func (r *RoomRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n)
	return n, err
}
