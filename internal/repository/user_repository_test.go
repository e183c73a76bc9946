package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/wicaksana/report-tracking/internal/workflow"
)

func TestCreateNormalizesUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Siti", "siti.tu", sqlmock.AnyArg(), "tu").
		WillReturnResult(sqlmock.NewResult(5, 1))

	repo := NewUserRepo(db)
	id, err := repo.Create(context.Background(), "Siti", "  SITI.TU ", "secret123", workflow.RoleTU, 4)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 5 {
		t.Fatalf("unexpected id: %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateDuplicateUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'siti.tu' for key 'users.user_id'"))

	repo := NewUserRepo(db)
	if _, err := repo.Create(context.Background(), "Siti", "siti.tu", "secret123", workflow.RoleTU, 4); !errors.Is(err, ErrUserIDExists) {
		t.Fatalf("expected ErrUserIDExists, got %v", err)
	}
}

// Deactivated accounts must not resolve on login lookups.
func TestGetByUserIDExcludesInactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM users WHERE user_id=. AND is_active=1").
		WithArgs("siti.tu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id", "password_hash", "role", "is_active", "created_at", "updated_at"}))

	repo := NewUserRepo(db)
	if _, err := repo.GetByUserID(context.Background(), "Siti.TU"); err == nil {
		t.Fatal("expected an error for a deactivated account")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeactivateSoftDeletes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE users SET is_active=0 WHERE id=.").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepo(db)
	if err := repo.Deactivate(context.Background(), 5); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDReturnsInactiveAccounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM users WHERE id=.").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id", "password_hash", "role", "is_active", "created_at", "updated_at"}).
			AddRow(5, "Siti", "siti.tu", "$2a$04$hash", "tu", false, now, now))

	repo := NewUserRepo(db)
	u, err := repo.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if u.IsActive {
		t.Fatal("expected inactive account")
	}
	if u.Role != workflow.RoleTU {
		t.Fatalf("unexpected role: %s", u.Role)
	}
}
