package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Yohannes19/sbms/internal/model"
	"github.com/Yohannes19/sbms/internal/utils"
)

// UserRepo manages the users table.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, username, email, password_hash, is_active, is_superuser, DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')`

// Create hashes the password and inserts the user, returning its ID.
// Duplicate usernames surface as ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, username string, email *string, password string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?,?,?)",
		username, email, hash)
	if err != nil {
		// MySQL error 1062 = duplicate entry for a unique key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsSuperuser, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsSuperuser, &u.CreatedAt)
	return u, err
}

// Authenticate loads the user and verifies the password.  It returns
// sql.ErrNoRows for unknown usernames, inactive accounts and wrong
// passwords alike, so callers cannot tell which credential was bad.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}
