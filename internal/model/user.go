package model

import "time"

// User represents an authentication principal as stored in the `users`
// table.  Users exist purely to gate access to the API; they are not
// related to tenants.  The json tags are omitted because these structs
// are used internally by the repository layer; handlers define separate
// response types.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  Email        – contact email (nullable).
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account may log in.
//  IsSuperuser  – grants the ADMIN role claim.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64  // users.id
	Username     string  // users.username
	Email        *string // users.email (nullable)
	PasswordHash string  // users.password_hash
	IsActive     bool    // users.is_active
	IsSuperuser  bool    // users.is_superuser
	CreatedAt    string  // users.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token never touches the database; only its SHA-256 hash is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (nil if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
