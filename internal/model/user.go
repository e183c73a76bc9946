package model

import (
	"time"

	"github.com/wicaksana/report-tracking/internal/workflow"
)

// User represents an application user record as stored in the `users` table.
// Handlers define separate response types with JSON tags; these structs are
// used by the repository layer.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  UserID       – unique human-facing login identifier.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of admin, tu, coordinator, staff.
//  IsActive     – whether the account is active; deletion is modeled as
//                 removal from the active set, never as a hard delete.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64        // users.id
	Name         string        // users.name
	UserID       string        // users.user_id
	PasswordHash string        // users.password_hash
	Role         workflow.Role // users.role
	IsActive     bool          // users.is_active
	CreatedAt    time.Time     // users.created_at
	UpdatedAt    time.Time     // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each refresh
// token belongs to a user; only its SHA-256 hash is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token (users.id).
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
