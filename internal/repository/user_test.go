package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/taskvault/taskvault-go/internal/model"
)

func newMockRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewUserRepository(db), mock
}

func TestUserCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectExec(`INSERT INTO users \(id, email, username, password_hash\)`).
		WithArgs(sqlmock.AnyArg(), "alice@example.com", "alice", "hash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT created_at, updated_at FROM users WHERE id = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	user := &model.User{Email: "alice@example.com", Username: "alice", PasswordHash: "hash"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if user.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("Create() did not assign an id")
	}
	if !user.CreatedAt.Equal(now) {
		t.Errorf("Create() CreatedAt = %v, want %v", user.CreatedAt, now)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New(`Error 1062 (23000): Duplicate entry 'alice@example.com' for key 'users.uq_users_email'`))

	user := &model.User{Email: "alice@example.com", Username: "alice", PasswordHash: "hash"}
	err := repo.Create(context.Background(), user)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Create() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM users WHERE email = \?`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "created_at", "updated_at"}))

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrUserNotFound", err)
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Error("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Error("ErrUserNotFound should not be a duplicate entry error")
	}
	if !isDuplicateEntryError(errors.New("Duplicate entry 'x' for key 'users.uq_users_email'")) {
		t.Error("MySQL 1062 error should be a duplicate entry error")
	}
}
