package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/wicaksana/report-tracking/internal/model"
	"github.com/wicaksana/report-tracking/internal/utils"
	"github.com/wicaksana/report-tracking/internal/workflow"
)

// UserRepo provides access to the users table. The users table is the
// authoritative identity store: role checks on privileged actions re-read
// from here rather than trusting client-held state.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,user_id,password_hash,role,is_active,created_at,updated_at"

// Create inserts a user and returns its ID. The login identifier is
// normalized to lower case and must be unique.
func (r *UserRepo) Create(ctx context.Context, name, userID, password string, role workflow.Role, cost int) (uint64, error) {
	userID = strings.ToLower(strings.TrimSpace(userID))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, user_id, password_hash, role) VALUES (?,?,?,?)",
		name, userID, hash, string(role))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUserIDExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUserID fetches an active user by normalized login identifier.
// Inactive users are excluded so that deactivated accounts cannot log in.
func (r *UserRepo) GetByUserID(ctx context.Context, userID string) (model.User, error) {
	userID = strings.ToLower(strings.TrimSpace(userID))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE user_id=? AND is_active=1 LIMIT 1",
		userID).Scan(&u.ID, &u.Name, &u.UserID, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id regardless of active flag.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.UserID, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// ListActive returns all active users ordered by creation time.
func (r *UserRepo) ListActive(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE is_active=1 ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.UserID, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update changes a user's display name, role and active flag.
func (r *UserRepo) Update(ctx context.Context, id uint64, name string, role workflow.Role, isActive bool) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, role=?, is_active=? WHERE id=?",
		name, string(role), isActive, id)
	return err
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// Deactivate removes a user from the active set. User rows are never hard
// deleted; historical timeline events keep referring to them.
func (r *UserRepo) Deactivate(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET is_active=0 WHERE id=?", id)
	return err
}
