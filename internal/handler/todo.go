package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskvault/taskvault-go/internal/middleware"
	"github.com/taskvault/taskvault-go/internal/model"
	"github.com/taskvault/taskvault-go/internal/service"
)

const maxBatchSize = 100

// TodoHandler handles HTTP requests for todo list and item operations.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleCreateList handles POST /api/v1/todos requests.
func (h *TodoHandler) HandleCreateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var req model.TodoListCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.CreateList(r.Context(), userID, req)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleListLists handles GET /api/v1/todos requests with page/size query
// parameters.
func (h *TodoHandler) HandleListLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	page, size := pageParams(r)

	resp, err := h.service.ListLists(r.Context(), userID, page, size)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetList handles GET /api/v1/todos/{todo_id} requests.
func (h *TodoHandler) HandleGetList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetList(r.Context(), userID, chi.URLParam(r, "todo_id"))
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateList handles PUT /api/v1/todos/{todo_id} requests.
func (h *TodoHandler) HandleUpdateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var req model.TodoListUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateList(r.Context(), userID, chi.URLParam(r, "todo_id"), req)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteList handles DELETE /api/v1/todos/{todo_id} requests.
func (h *TodoHandler) HandleDeleteList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteList(r.Context(), userID, chi.URLParam(r, "todo_id")); err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("todo list deleted"))
}

// HandleCreateItem handles POST /api/v1/todos/{todo_id}/items requests.
func (h *TodoHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var req model.TodoItemCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.CreateItem(r.Context(), userID, chi.URLParam(r, "todo_id"), req)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleListItems handles GET /api/v1/todos/{todo_id}/items requests.
func (h *TodoHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	page, size := pageParams(r)

	resp, err := h.service.ListItems(r.Context(), userID, chi.URLParam(r, "todo_id"), page, size)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateItem handles PUT /api/v1/todos/{todo_id}/items/{item_id} requests.
func (h *TodoHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var req model.TodoItemUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateItem(r.Context(), userID, chi.URLParam(r, "todo_id"), chi.URLParam(r, "item_id"), req)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteItem handles DELETE /api/v1/todos/{todo_id}/items/{item_id} requests.
func (h *TodoHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteItem(r.Context(), userID, chi.URLParam(r, "todo_id"), chi.URLParam(r, "item_id")); err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("todo item deleted"))
}

// HandleCreateManyLists handles POST /api/v1/todos/batch requests.
func (h *TodoHandler) HandleCreateManyLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var reqs []model.TodoListCreateRequest
	if !decodeBody(w, r, &reqs) {
		return
	}
	if !batchSizeOK(w, len(reqs)) {
		return
	}

	resp, err := h.service.CreateManyLists(r.Context(), userID, reqs)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleUpdateManyLists handles PUT /api/v1/todos/batch requests.
func (h *TodoHandler) HandleUpdateManyLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var updates []model.TodoListBatchUpdate
	if !decodeBody(w, r, &updates) {
		return
	}
	if !batchSizeOK(w, len(updates)) {
		return
	}

	resp, err := h.service.UpdateManyLists(r.Context(), userID, updates)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteManyLists handles DELETE /api/v1/todos/batch requests.
func (h *TodoHandler) HandleDeleteManyLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var req model.BatchDeleteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !batchSizeOK(w, len(req.IDs)) {
		return
	}

	if err := h.service.DeleteManyLists(r.Context(), userID, req.IDs); err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse(fmt.Sprintf("deleted %d todo lists", len(req.IDs))))
}

// HandleCreateManyItems handles POST /api/v1/todos/{todo_id}/items/batch requests.
func (h *TodoHandler) HandleCreateManyItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var reqs []model.TodoItemCreateRequest
	if !decodeBody(w, r, &reqs) {
		return
	}
	if !batchSizeOK(w, len(reqs)) {
		return
	}

	resp, err := h.service.CreateManyItems(r.Context(), userID, chi.URLParam(r, "todo_id"), reqs)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleUpdateManyItems handles PUT /api/v1/todos/{todo_id}/items/batch requests.
func (h *TodoHandler) HandleUpdateManyItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var updates []model.TodoItemBatchUpdate
	if !decodeBody(w, r, &updates) {
		return
	}
	if !batchSizeOK(w, len(updates)) {
		return
	}

	resp, err := h.service.UpdateManyItems(r.Context(), userID, chi.URLParam(r, "todo_id"), updates)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteManyItems handles DELETE /api/v1/todos/{todo_id}/items/batch requests.
func (h *TodoHandler) HandleDeleteManyItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	var req model.BatchDeleteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !batchSizeOK(w, len(req.IDs)) {
		return
	}

	if err := h.service.DeleteManyItems(r.Context(), userID, chi.URLParam(r, "todo_id"), req.IDs); err != nil {
		writeTodoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse(fmt.Sprintf("deleted %d todo items", len(req.IDs))))
}

func authedUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return uuid.Nil, false
	}
	return userID, true
}

func pageParams(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	return page, size
}

func batchSizeOK(w http.ResponseWriter, n int) bool {
	if n == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("batch must not be empty"))
		return false
	}
	if n > maxBatchSize {
		writeJSON(w, http.StatusBadRequest, errorResponse("too many elements in batch request (max 100)"))
		return false
	}
	return true
}

func writeTodoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrListNotFound), errors.Is(err, service.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
