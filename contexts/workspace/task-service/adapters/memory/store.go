package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"crudhub/contexts/workspace/task-service/domain/entities"
	domainerrors "crudhub/contexts/workspace/task-service/domain/errors"
	"crudhub/contexts/workspace/task-service/ports"
	"crudhub/internal/shared/pagination"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	tasks map[string]entities.Task
}

func NewStore(seed []entities.Task) *Store {
	tasks := make(map[string]entities.Task, len(seed))
	for _, item := range seed {
		tasks[item.TaskID] = item
	}
	return &Store{tasks: tasks}
}

func (s *Store) CreateTask(_ context.Context, task entities.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.TaskID]; exists {
		return domainerrors.ErrTaskAlreadyExists
	}
	s.tasks[task.TaskID] = cloneTask(task)
	return nil
}

func (s *Store) GetTask(_ context.Context, taskID string) (entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.tasks[strings.TrimSpace(taskID)]
	if !exists {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}
	return cloneTask(item), nil
}

func (s *Store) UpdateTask(_ context.Context, task entities.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.TaskID]; !exists {
		return domainerrors.ErrTaskNotFound
	}
	s.tasks[task.TaskID] = cloneTask(task)
	return nil
}

func (s *Store) DeleteTask(_ context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	taskID = strings.TrimSpace(taskID)
	if _, exists := s.tasks[taskID]; !exists {
		return domainerrors.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

func (s *Store) ListTasks(_ context.Context, filter ports.TaskFilter) ([]entities.Task, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(filter.Title))
	items := make([]entities.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if needle != "" && !strings.Contains(strings.ToLower(task.Title), needle) {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.DueFrom != nil && !task.DueOnOrAfter(*filter.DueFrom) {
			continue
		}
		items = append(items, cloneTask(task))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].TaskID > items[j].TaskID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := len(items)
	start, end := pagination.Window{Skip: filter.Offset, Limit: filter.Limit}.Bounds(total)
	return append([]entities.Task(nil), items[start:end]...), total, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneTask(task entities.Task) entities.Task {
	if task.DueDate != nil {
		due := *task.DueDate
		task.DueDate = &due
	}
	return task
}
