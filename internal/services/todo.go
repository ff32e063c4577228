package services

import (
	"context"

	"github.com/gotodo/webapp/types"
)

// TodoRepository defines persistence operations for to-do items.
type TodoRepository interface {
	List(ctx context.Context) ([]types.TodoItem, error)
	Create(ctx context.Context, item types.TodoItem) (types.TodoItem, error)
	Delete(ctx context.Context, id, ownerID int) error
}

// TodoService encapsulates to-do item use-cases.
type TodoService struct {
	repo TodoRepository
}

func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// List returns all items across all users. The home view shows every
// item, not just the current user's.
func (s *TodoService) List(ctx context.Context) ([]types.TodoItem, error) {
	return s.repo.List(ctx)
}

func (s *TodoService) Add(ctx context.Context, name, dueDate string, ownerID int) (types.TodoItem, error) {
	return s.repo.Create(ctx, types.TodoItem{
		Name:    name,
		DueDate: dueDate,
		OwnerID: ownerID,
	})
}

// Delete removes the item with the given id when it belongs to ownerID.
// It returns store.ErrNotFound for missing or non-owned ids.
func (s *TodoService) Delete(ctx context.Context, id, ownerID int) error {
	return s.repo.Delete(ctx, id, ownerID)
}
