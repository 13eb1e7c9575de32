package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/taskvault/taskvault-go/internal/model"
	"github.com/taskvault/taskvault-go/internal/repository"
)

func newTestTodoService() *TodoService {
	return NewTodoService(repository.NewTodoRepository(nil))
}

func newMockTodoService(t *testing.T) (*TodoService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewTodoService(repository.NewTodoRepository(db)), mock
}

func TestCreateList_EmptyTitle(t *testing.T) {
	svc := newTestTodoService()

	_, err := svc.CreateList(context.Background(), uuid.New(), model.TodoListCreateRequest{})
	if !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestGetList_UnparsableID(t *testing.T) {
	svc := newTestTodoService()

	// A malformed id must look exactly like an absent one.
	_, err := svc.GetList(context.Background(), uuid.New(), "not-a-uuid")
	if !errors.Is(err, ErrListNotFound) {
		t.Errorf("expected ErrListNotFound, got %v", err)
	}
}

func TestDeleteItem_UnparsableIDs(t *testing.T) {
	svc := newTestTodoService()

	if err := svc.DeleteItem(context.Background(), uuid.New(), "not-a-uuid", uuid.NewString()); !errors.Is(err, ErrListNotFound) {
		t.Errorf("expected ErrListNotFound for bad list id, got %v", err)
	}
	if err := svc.DeleteItem(context.Background(), uuid.New(), uuid.NewString(), "not-a-uuid"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound for bad item id, got %v", err)
	}
}

func TestListLists_PaginationMetadata(t *testing.T) {
	svc, mock := newMockTodoService(t)
	ownerID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM todos WHERE user_id = \?`).
		WithArgs(ownerID, 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "description", "created_at", "updated_at"}).
			AddRow(uuid.New(), ownerID, "Groceries", "", now, now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM todos WHERE user_id = \?`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

	page, err := svc.ListLists(context.Background(), ownerID, 2, 20)
	if err != nil {
		t.Fatalf("ListLists() unexpected error: %v", err)
	}

	if page.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", page.CurrentPage)
	}
	if page.Size != 1 {
		t.Errorf("Size = %d, want 1", page.Size)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
}

func TestListItems_UnparsableListIDYieldsEmptyPage(t *testing.T) {
	svc := newTestTodoService()

	page, err := svc.ListItems(context.Background(), uuid.New(), "not-a-uuid", 1, 20)
	if err != nil {
		t.Fatalf("ListItems() unexpected error: %v", err)
	}
	if len(page.Data) != 0 {
		t.Errorf("ListItems() returned %d items, want 0", len(page.Data))
	}
}

func TestDeleteManyLists_AbortsOnFirstFailure(t *testing.T) {
	svc, mock := newMockTodoService(t)
	ownerID := uuid.New()
	owned, foreign, never := uuid.New(), uuid.New(), uuid.New()

	// The owned list is deleted; the foreign one fails the owner-scoped
	// predicate and aborts the batch before the third id is touched.
	mock.ExpectExec(`DELETE FROM todos WHERE id = \? AND user_id = \?`).
		WithArgs(owned, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM todos WHERE id = \? AND user_id = \?`).
		WithArgs(foreign, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.DeleteManyLists(context.Background(), ownerID,
		[]string{owned.String(), foreign.String(), never.String()})

	if !errors.Is(err, ErrListNotFound) {
		t.Errorf("DeleteManyLists() error = %v, want ErrListNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateManyLists_AbortsOnFirstFailure(t *testing.T) {
	svc, mock := newMockTodoService(t)
	ownerID := uuid.New()
	foreign := uuid.New()
	title := "renamed"

	mock.ExpectQuery(`FROM todos WHERE id = \? AND user_id = \?`).
		WithArgs(foreign, ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "description", "created_at", "updated_at"}))

	_, err := svc.UpdateManyLists(context.Background(), ownerID, []model.TodoListBatchUpdate{
		{ID: foreign.String(), Data: model.TodoListUpdateRequest{Title: &title}},
	})

	if !errors.Is(err, ErrListNotFound) {
		t.Errorf("UpdateManyLists() error = %v, want ErrListNotFound", err)
	}
}

func TestCreateManyLists_CreatesInOrder(t *testing.T) {
	svc, mock := newMockTodoService(t)
	ownerID := uuid.New()

	now := time.Now()
	mock.ExpectExec(`INSERT INTO todos`).
		WithArgs(sqlmock.AnyArg(), ownerID, "first", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT created_at, updated_at FROM todos WHERE id = \?`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT INTO todos`).
		WithArgs(sqlmock.AnyArg(), ownerID, "second", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT created_at, updated_at FROM todos WHERE id = \?`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := svc.CreateManyLists(context.Background(), ownerID, []model.TodoListCreateRequest{
		{Title: "first"},
		{Title: "second"},
	})
	if err != nil {
		t.Fatalf("CreateManyLists() unexpected error: %v", err)
	}

	if len(created) != 2 {
		t.Fatalf("CreateManyLists() created %d lists, want 2", len(created))
	}
	if created[0].Title != "first" || created[1].Title != "second" {
		t.Errorf("CreateManyLists() order = [%q, %q], want [first, second]", created[0].Title, created[1].Title)
	}
}

func TestUpdateList_MergesPartialFields(t *testing.T) {
	svc, mock := newMockTodoService(t)
	ownerID, listID := uuid.New(), uuid.New()
	now := time.Now()
	cols := []string{"id", "user_id", "title", "description", "created_at", "updated_at"}

	mock.ExpectQuery(`FROM todos WHERE id = \? AND user_id = \?`).
		WithArgs(listID, ownerID).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(listID, ownerID, "Groceries", "weekly run", now, now))
	// Only the title changes; the description keeps its stored value.
	mock.ExpectExec(`UPDATE todos SET title = \?, description = \? WHERE id = \? AND user_id = \?`).
		WithArgs("Food", "weekly run", listID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM todos WHERE id = \? AND user_id = \?`).
		WithArgs(listID, ownerID).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(listID, ownerID, "Food", "weekly run", now, now))

	title := "Food"
	resp, err := svc.UpdateList(context.Background(), ownerID, listID.String(), model.TodoListUpdateRequest{Title: &title})
	if err != nil {
		t.Fatalf("UpdateList() unexpected error: %v", err)
	}

	if resp.Title != "Food" || resp.Description != "weekly run" {
		t.Errorf("UpdateList() = %+v, want title Food with description kept", resp)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
