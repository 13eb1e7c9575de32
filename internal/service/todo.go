package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taskvault/taskvault-go/internal/model"
	"github.com/taskvault/taskvault-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	// ErrListNotFound is returned both when a list id does not exist and
	// when it exists under another account. The two cases are deliberately
	// indistinguishable so list ids cannot be probed across tenants.
	ErrListNotFound = errors.New("todo list not found")
	// ErrItemNotFound conflates absent and foreign-owned items the same way.
	ErrItemNotFound = errors.New("todo item not found")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// TodoService handles todo list and item business logic. Every operation
// takes the authenticated user's id explicitly and scopes repository access
// to it.
type TodoService struct {
	repo *repository.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(repo *repository.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// CreateList creates a new todo list owned by the user.
func (s *TodoService) CreateList(ctx context.Context, userID uuid.UUID, req model.TodoListCreateRequest) (model.TodoListResponse, error) {
	if req.Title == "" {
		return model.TodoListResponse{}, ErrTitleRequired
	}

	list, err := s.repo.CreateList(ctx, userID, req.Title, req.Description)
	if err != nil {
		return model.TodoListResponse{}, err
	}

	return listToResponse(list), nil
}

// GetList retrieves one of the user's todo lists by id.
func (s *TodoService) GetList(ctx context.Context, userID uuid.UUID, listID string) (model.TodoListResponse, error) {
	id, err := parseListID(listID)
	if err != nil {
		return model.TodoListResponse{}, err
	}

	list, err := s.repo.GetListByID(ctx, id, userID)
	if err != nil {
		return model.TodoListResponse{}, mapListErr(err)
	}

	return listToResponse(list), nil
}

// ListLists returns a page of the user's todo lists with pagination
// metadata.
func (s *TodoService) ListLists(ctx context.Context, userID uuid.UUID, page, size int) (model.TodoListPage, error) {
	page, size = normalizePage(page, size)

	lists, err := s.repo.ListLists(ctx, userID, (page-1)*size, size)
	if err != nil {
		return model.TodoListPage{}, err
	}

	total, err := s.repo.CountLists(ctx, userID)
	if err != nil {
		return model.TodoListPage{}, err
	}

	data := make([]model.TodoListResponse, len(lists))
	for i := range lists {
		data[i] = listToResponse(&lists[i])
	}

	return model.TodoListPage{
		Data:        data,
		Size:        len(data),
		CurrentPage: page,
		TotalPages:  (total + size - 1) / size,
	}, nil
}

// UpdateList partially updates one of the user's todo lists. Nil request
// fields keep their current values.
func (s *TodoService) UpdateList(ctx context.Context, userID uuid.UUID, listID string, req model.TodoListUpdateRequest) (model.TodoListResponse, error) {
	id, err := parseListID(listID)
	if err != nil {
		return model.TodoListResponse{}, err
	}

	existing, err := s.repo.GetListByID(ctx, id, userID)
	if err != nil {
		return model.TodoListResponse{}, mapListErr(err)
	}

	title := existing.Title
	if req.Title != nil {
		title = *req.Title
	}
	if title == "" {
		return model.TodoListResponse{}, ErrTitleRequired
	}
	description := existing.Description
	if req.Description != nil {
		description = *req.Description
	}

	list, err := s.repo.UpdateList(ctx, id, userID, title, description)
	if err != nil {
		return model.TodoListResponse{}, mapListErr(err)
	}

	return listToResponse(list), nil
}

// DeleteList deletes one of the user's todo lists along with its items.
func (s *TodoService) DeleteList(ctx context.Context, userID uuid.UUID, listID string) error {
	id, err := parseListID(listID)
	if err != nil {
		return err
	}

	return mapListErr(s.repo.DeleteList(ctx, id, userID))
}

// CreateItem adds an item to one of the user's todo lists.
func (s *TodoService) CreateItem(ctx context.Context, userID uuid.UUID, listID string, req model.TodoItemCreateRequest) (model.TodoItemResponse, error) {
	id, err := parseListID(listID)
	if err != nil {
		return model.TodoItemResponse{}, err
	}

	if req.Title == "" {
		return model.TodoItemResponse{}, ErrTitleRequired
	}

	item, err := s.repo.CreateItem(ctx, id, userID, req.Title, req.Description)
	if err != nil {
		return model.TodoItemResponse{}, mapListErr(err)
	}

	return itemToResponse(item), nil
}

// ListItems returns a page of items from one of the user's todo lists.
// A list id that does not resolve under this user yields an empty page.
func (s *TodoService) ListItems(ctx context.Context, userID uuid.UUID, listID string, page, size int) (model.TodoItemPage, error) {
	page, size = normalizePage(page, size)

	id, err := uuid.Parse(listID)
	if err != nil {
		return model.TodoItemPage{
			Data:        []model.TodoItemResponse{},
			CurrentPage: page,
		}, nil
	}

	items, err := s.repo.ListItems(ctx, id, userID, (page-1)*size, size)
	if err != nil {
		return model.TodoItemPage{}, err
	}

	total, err := s.repo.CountItems(ctx, id, userID)
	if err != nil {
		return model.TodoItemPage{}, err
	}

	data := make([]model.TodoItemResponse, len(items))
	for i := range items {
		data[i] = itemToResponse(&items[i])
	}

	return model.TodoItemPage{
		Data:        data,
		Size:        len(data),
		CurrentPage: page,
		TotalPages:  (total + size - 1) / size,
	}, nil
}

// UpdateItem partially updates an item in one of the user's todo lists.
func (s *TodoService) UpdateItem(ctx context.Context, userID uuid.UUID, listID, itemID string, req model.TodoItemUpdateRequest) (model.TodoItemResponse, error) {
	lid, err := parseListID(listID)
	if err != nil {
		return model.TodoItemResponse{}, err
	}
	iid, err := parseItemID(itemID)
	if err != nil {
		return model.TodoItemResponse{}, err
	}

	existing, err := s.repo.GetItemByID(ctx, lid, iid, userID)
	if err != nil {
		return model.TodoItemResponse{}, mapItemErr(err)
	}

	title := existing.Title
	if req.Title != nil {
		title = *req.Title
	}
	if title == "" {
		return model.TodoItemResponse{}, ErrTitleRequired
	}
	description := existing.Description
	if req.Description != nil {
		description = *req.Description
	}
	completed := existing.Completed
	if req.Completed != nil {
		completed = *req.Completed
	}

	item, err := s.repo.UpdateItem(ctx, lid, iid, userID, title, description, completed)
	if err != nil {
		return model.TodoItemResponse{}, mapItemErr(err)
	}

	return itemToResponse(item), nil
}

// DeleteItem deletes an item from one of the user's todo lists.
func (s *TodoService) DeleteItem(ctx context.Context, userID uuid.UUID, listID, itemID string) error {
	lid, err := parseListID(listID)
	if err != nil {
		return err
	}
	iid, err := parseItemID(itemID)
	if err != nil {
		return err
	}

	return mapItemErr(s.repo.DeleteItem(ctx, lid, iid, userID))
}

// CreateManyLists creates a batch of todo lists for the user. Elements are
// processed in order; the first failing element aborts the batch and lists
// created before it are kept.
func (s *TodoService) CreateManyLists(ctx context.Context, userID uuid.UUID, reqs []model.TodoListCreateRequest) ([]model.TodoListResponse, error) {
	created := make([]model.TodoListResponse, 0, len(reqs))
	for _, req := range reqs {
		resp, err := s.CreateList(ctx, userID, req)
		if err != nil {
			return nil, err
		}
		created = append(created, resp)
	}
	return created, nil
}

// UpdateManyLists updates a batch of the user's todo lists. Elements are
// processed in order; the first element that fails the owner-scoped lookup
// aborts the batch with ErrListNotFound and earlier updates are kept.
func (s *TodoService) UpdateManyLists(ctx context.Context, userID uuid.UUID, updates []model.TodoListBatchUpdate) ([]model.TodoListResponse, error) {
	updated := make([]model.TodoListResponse, 0, len(updates))
	for _, u := range updates {
		resp, err := s.UpdateList(ctx, userID, u.ID, u.Data)
		if err != nil {
			return nil, err
		}
		updated = append(updated, resp)
	}
	return updated, nil
}

// DeleteManyLists deletes a batch of the user's todo lists. Elements are
// processed in order; the first element that fails the owner-scoped lookup
// aborts the batch with ErrListNotFound, and deletions already executed are
// not rolled back.
func (s *TodoService) DeleteManyLists(ctx context.Context, userID uuid.UUID, listIDs []string) error {
	for _, listID := range listIDs {
		if err := s.DeleteList(ctx, userID, listID); err != nil {
			return err
		}
	}
	return nil
}

// CreateManyItems adds a batch of items to one of the user's todo lists,
// aborting on the first failure.
func (s *TodoService) CreateManyItems(ctx context.Context, userID uuid.UUID, listID string, reqs []model.TodoItemCreateRequest) ([]model.TodoItemResponse, error) {
	created := make([]model.TodoItemResponse, 0, len(reqs))
	for _, req := range reqs {
		resp, err := s.CreateItem(ctx, userID, listID, req)
		if err != nil {
			return nil, err
		}
		created = append(created, resp)
	}
	return created, nil
}

// UpdateManyItems updates a batch of items in one of the user's todo
// lists, aborting on the first failure with earlier updates kept.
func (s *TodoService) UpdateManyItems(ctx context.Context, userID uuid.UUID, listID string, updates []model.TodoItemBatchUpdate) ([]model.TodoItemResponse, error) {
	updated := make([]model.TodoItemResponse, 0, len(updates))
	for _, u := range updates {
		resp, err := s.UpdateItem(ctx, userID, listID, u.ID, u.Data)
		if err != nil {
			return nil, err
		}
		updated = append(updated, resp)
	}
	return updated, nil
}

// DeleteManyItems deletes a batch of items from one of the user's todo
// lists, aborting on the first failure with earlier deletions kept.
func (s *TodoService) DeleteManyItems(ctx context.Context, userID uuid.UUID, listID string, itemIDs []string) error {
	for _, itemID := range itemIDs {
		if err := s.DeleteItem(ctx, userID, listID, itemID); err != nil {
			return err
		}
	}
	return nil
}

// parseListID parses a list id from its text form. An unparsable id can
// never name an owned resource, so it reports the same not-found as an
// absent one.
func parseListID(listID string) (uuid.UUID, error) {
	id, err := uuid.Parse(listID)
	if err != nil {
		return uuid.Nil, ErrListNotFound
	}
	return id, nil
}

func parseItemID(itemID string) (uuid.UUID, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return uuid.Nil, ErrItemNotFound
	}
	return id, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func mapListErr(err error) error {
	if errors.Is(err, repository.ErrListNotFound) {
		return ErrListNotFound
	}
	return err
}

func mapItemErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrItemNotFound):
		return ErrItemNotFound
	case errors.Is(err, repository.ErrListNotFound):
		return ErrListNotFound
	}
	return err
}

func listToResponse(list *model.TodoList) model.TodoListResponse {
	return model.TodoListResponse{
		ID:          list.ID,
		Title:       list.Title,
		Description: list.Description,
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
	}
}

func itemToResponse(item *model.TodoItem) model.TodoItemResponse {
	return model.TodoItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Completed:   item.Completed,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
