package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/taskvault/taskvault-go/internal/model"
)

var (
	ErrListNotFound = errors.New("todo list not found")
	ErrItemNotFound = errors.New("todo item not found")
)

// TodoRepository handles todo list and todo item persistence. Every query
// carries the owning user's id as a hard conjunct: a row that exists but
// belongs to another user is indistinguishable from an absent row.
type TodoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// CreateList inserts a new todo list owned by the given user.
func (r *TodoRepository) CreateList(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.TodoList, error) {
	list := &model.TodoList{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       title,
		Description: description,
	}

	query := `INSERT INTO todos (id, user_id, title, description) VALUES (?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, list.ID, list.UserID, list.Title, list.Description); err != nil {
		return nil, err
	}

	// Read back the DB-assigned timestamps.
	err := r.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM todos WHERE id = ?`, list.ID,
	).Scan(&list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return list, nil
}

// GetListByID retrieves a todo list by id, scoped to its owner.
func (r *TodoRepository) GetListByID(ctx context.Context, listID, ownerID uuid.UUID) (*model.TodoList, error) {
	query := `SELECT id, user_id, title, description, created_at, updated_at
		FROM todos WHERE id = ? AND user_id = ?`

	list := &model.TodoList{}
	err := r.db.QueryRowContext(ctx, query, listID, ownerID).Scan(
		&list.ID, &list.UserID, &list.Title, &list.Description, &list.CreatedAt, &list.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	return list, nil
}

// ListLists retrieves a page of the user's todo lists, newest first.
func (r *TodoRepository) ListLists(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]model.TodoList, error) {
	query := `SELECT id, user_id, title, description, created_at, updated_at
		FROM todos WHERE user_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []model.TodoList
	for rows.Next() {
		var l model.TodoList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.Description, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}

	return lists, rows.Err()
}

// CountLists counts the user's todo lists.
func (r *TodoRepository) CountLists(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE user_id = ?`, ownerID).Scan(&count)
	return count, err
}

// UpdateList applies the given values to an owner's todo list and returns
// the updated row. Returns ErrListNotFound when the list does not exist for
// this owner.
func (r *TodoRepository) UpdateList(ctx context.Context, listID, ownerID uuid.UUID, title, description string) (*model.TodoList, error) {
	query := `UPDATE todos SET title = ?, description = ? WHERE id = ? AND user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, title, description, listID, ownerID); err != nil {
		return nil, err
	}

	return r.GetListByID(ctx, listID, ownerID)
}

// DeleteList deletes an owner's todo list. Items cascade with the list via
// the foreign key, so they never outlive their parent. Returns
// ErrListNotFound when the list does not exist for this owner.
func (r *TodoRepository) DeleteList(ctx context.Context, listID, ownerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, listID, ownerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrListNotFound
	}

	return nil
}

// CreateItem inserts a new item into an owner's todo list. The insert only
// happens when the parent list exists and is owned by ownerID; otherwise
// ErrListNotFound is returned.
func (r *TodoRepository) CreateItem(ctx context.Context, listID, ownerID uuid.UUID, title, description string) (*model.TodoItem, error) {
	item := &model.TodoItem{
		ID:          uuid.New(),
		TodoID:      listID,
		Title:       title,
		Description: description,
	}

	// INSERT ... SELECT keeps the ownership check and the insert in one
	// statement: zero rows inserted means no owned parent list.
	query := `INSERT INTO todo_items (id, todo_id, title, description)
		SELECT ?, id, ?, ? FROM todos WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, item.ID, item.Title, item.Description, listID, ownerID)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrListNotFound
	}

	// Read back the DB-assigned timestamps.
	err = r.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM todo_items WHERE id = ?`, item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// GetItemByID retrieves an item by id within an owner's todo list.
func (r *TodoRepository) GetItemByID(ctx context.Context, listID, itemID, ownerID uuid.UUID) (*model.TodoItem, error) {
	query := `SELECT i.id, i.todo_id, i.title, i.description, i.completed, i.created_at, i.updated_at
		FROM todo_items i
		JOIN todos t ON t.id = i.todo_id
		WHERE i.id = ? AND i.todo_id = ? AND t.user_id = ?`

	item := &model.TodoItem{}
	err := r.db.QueryRowContext(ctx, query, itemID, listID, ownerID).Scan(
		&item.ID, &item.TodoID, &item.Title, &item.Description, &item.Completed, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// ListItems retrieves a page of items from an owner's todo list, oldest
// first. An absent or foreign list yields an empty page.
func (r *TodoRepository) ListItems(ctx context.Context, listID, ownerID uuid.UUID, offset, limit int) ([]model.TodoItem, error) {
	query := `SELECT i.id, i.todo_id, i.title, i.description, i.completed, i.created_at, i.updated_at
		FROM todo_items i
		JOIN todos t ON t.id = i.todo_id
		WHERE i.todo_id = ? AND t.user_id = ?
		ORDER BY i.created_at ASC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, listID, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.TodoItem
	for rows.Next() {
		var i model.TodoItem
		if err := rows.Scan(&i.ID, &i.TodoID, &i.Title, &i.Description, &i.Completed, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

// CountItems counts the items in an owner's todo list.
func (r *TodoRepository) CountItems(ctx context.Context, listID, ownerID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM todo_items i
		JOIN todos t ON t.id = i.todo_id
		WHERE i.todo_id = ? AND t.user_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, listID, ownerID).Scan(&count)
	return count, err
}

// UpdateItem applies the given values to an item within an owner's todo
// list and returns the updated row. Returns ErrItemNotFound when the item
// does not exist in a list owned by ownerID.
func (r *TodoRepository) UpdateItem(ctx context.Context, listID, itemID, ownerID uuid.UUID, title, description string, completed bool) (*model.TodoItem, error) {
	query := `UPDATE todo_items i
		JOIN todos t ON t.id = i.todo_id
		SET i.title = ?, i.description = ?, i.completed = ?
		WHERE i.id = ? AND i.todo_id = ? AND t.user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, title, description, completed, itemID, listID, ownerID); err != nil {
		return nil, err
	}

	return r.GetItemByID(ctx, listID, itemID, ownerID)
}

// DeleteItem deletes an item from an owner's todo list. Returns
// ErrItemNotFound when the item does not exist in a list owned by ownerID.
func (r *TodoRepository) DeleteItem(ctx context.Context, listID, itemID, ownerID uuid.UUID) error {
	query := `DELETE i FROM todo_items i
		JOIN todos t ON t.id = i.todo_id
		WHERE i.id = ? AND i.todo_id = ? AND t.user_id = ?`

	result, err := r.db.ExecContext(ctx, query, itemID, listID, ownerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
