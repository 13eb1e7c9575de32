package model

import (
	"time"

	"github.com/google/uuid"
)

// TodoList represents a todo list in the database. UserID is the owning
// user, assigned at creation and immutable afterwards.
type TodoList struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoItem represents a single item within a todo list. Ownership is
// transitive through the parent list.
type TodoItem struct {
	ID          uuid.UUID
	TodoID      uuid.UUID
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoListCreateRequest represents a request to create a todo list.
type TodoListCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TodoListUpdateRequest represents a partial update of a todo list.
// Nil fields are left unchanged.
type TodoListUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// TodoItemCreateRequest represents a request to add an item to a todo list.
type TodoItemCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TodoItemUpdateRequest represents a partial update of a todo item.
// Nil fields are left unchanged.
type TodoItemUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoListResponse represents a todo list in API responses.
type TodoListResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoItemResponse represents a todo item in API responses.
type TodoItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoListPage is a paginated page of todo lists.
type TodoListPage struct {
	Data        []TodoListResponse `json:"data"`
	Size        int                `json:"size"`
	CurrentPage int                `json:"current_page"`
	TotalPages  int                `json:"total_pages"`
}

// TodoItemPage is a paginated page of todo items.
type TodoItemPage struct {
	Data        []TodoItemResponse `json:"data"`
	Size        int                `json:"size"`
	CurrentPage int                `json:"current_page"`
	TotalPages  int                `json:"total_pages"`
}

// TodoListBatchUpdate pairs a todo list id with its update payload in a
// batch update request.
type TodoListBatchUpdate struct {
	ID   string                `json:"id"`
	Data TodoListUpdateRequest `json:"data"`
}

// TodoItemBatchUpdate pairs a todo item id with its update payload in a
// batch update request.
type TodoItemBatchUpdate struct {
	ID   string                `json:"id"`
	Data TodoItemUpdateRequest `json:"data"`
}

// BatchDeleteRequest carries the ids targeted by a batch delete.
type BatchDeleteRequest struct {
	IDs []string `json:"ids"`
}
