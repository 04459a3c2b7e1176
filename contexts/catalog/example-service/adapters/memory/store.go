package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"crudhub/contexts/catalog/example-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/example-service/domain/errors"
	"crudhub/contexts/catalog/example-service/ports"
	"crudhub/internal/shared/pagination"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	examples map[string]entities.Example
}

func NewStore(seed []entities.Example) *Store {
	examples := make(map[string]entities.Example, len(seed))
	for _, item := range seed {
		examples[item.ExampleID] = item
	}
	return &Store{examples: examples}
}

func (s *Store) CreateExample(_ context.Context, example entities.Example) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.examples[example.ExampleID]; exists {
		return domainerrors.ErrExampleAlreadyExists
	}
	s.examples[example.ExampleID] = example
	return nil
}

func (s *Store) GetExample(_ context.Context, exampleID string) (entities.Example, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.examples[strings.TrimSpace(exampleID)]
	if !exists {
		return entities.Example{}, domainerrors.ErrExampleNotFound
	}
	return item, nil
}

func (s *Store) UpdateExample(_ context.Context, example entities.Example) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.examples[example.ExampleID]; !exists {
		return domainerrors.ErrExampleNotFound
	}
	s.examples[example.ExampleID] = example
	return nil
}

func (s *Store) DeleteExample(_ context.Context, exampleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exampleID = strings.TrimSpace(exampleID)
	if _, exists := s.examples[exampleID]; !exists {
		return domainerrors.ErrExampleNotFound
	}
	delete(s.examples, exampleID)
	return nil
}

func (s *Store) ListExamples(_ context.Context, filter ports.ExampleFilter) ([]entities.Example, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Example, 0, len(s.examples))
	for _, item := range s.examples {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, item)
	}
	sortNewestFirst(items)

	total := len(items)
	start, end := pagination.Window{Skip: filter.Skip, Limit: filter.Limit}.Bounds(total)
	return append([]entities.Example(nil), items[start:end]...), total, nil
}

func (s *Store) FindByName(_ context.Context, fragment string) ([]entities.Example, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Example, 0)
	for _, item := range s.examples {
		if item.NameContains(fragment) {
			items = append(items, item)
		}
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) DeleteByStatus(_ context.Context, status entities.ExampleStatus) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, item := range s.examples {
		if item.Status == status {
			delete(s.examples, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortNewestFirst(items []entities.Example) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ExampleID > items[j].ExampleID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
