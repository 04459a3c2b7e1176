package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"crudhub/contexts/workspace/todo-service/domain/entities"
	domainerrors "crudhub/contexts/workspace/todo-service/domain/errors"
	"crudhub/contexts/workspace/todo-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	todos map[string]entities.Todo
}

func NewStore(seed []entities.Todo) *Store {
	todos := make(map[string]entities.Todo, len(seed))
	for _, item := range seed {
		todos[item.TodoID] = item
	}
	return &Store{todos: todos}
}

func (s *Store) CreateTodo(_ context.Context, todo entities.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[todo.TodoID]; exists {
		return domainerrors.ErrTodoAlreadyExists
	}
	s.todos[todo.TodoID] = todo
	return nil
}

func (s *Store) GetTodo(_ context.Context, todoID string) (entities.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.todos[strings.TrimSpace(todoID)]
	if !exists {
		return entities.Todo{}, domainerrors.ErrTodoNotFound
	}
	return item, nil
}

func (s *Store) GetOwnedTodo(_ context.Context, todoID string, ownerID string) (entities.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.todos[strings.TrimSpace(todoID)]
	if !exists || item.OwnerID != strings.TrimSpace(ownerID) {
		return entities.Todo{}, domainerrors.ErrTodoNotFound
	}
	return item, nil
}

func (s *Store) UpdateTodo(_ context.Context, todo entities.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[todo.TodoID]; !exists {
		return domainerrors.ErrTodoNotFound
	}
	s.todos[todo.TodoID] = todo
	return nil
}

func (s *Store) DeleteOwnedTodo(_ context.Context, todoID string, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todoID = strings.TrimSpace(todoID)
	item, exists := s.todos[todoID]
	if !exists || item.OwnerID != strings.TrimSpace(ownerID) {
		return domainerrors.ErrTodoNotFound
	}
	delete(s.todos, todoID)
	return nil
}

func (s *Store) ListTodos(_ context.Context, filter ports.TodoFilter) ([]entities.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Todo, 0, len(s.todos))
	for _, item := range s.todos {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].TodoID > items[j].TodoID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
