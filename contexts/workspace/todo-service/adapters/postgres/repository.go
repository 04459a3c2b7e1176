package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"crudhub/contexts/workspace/todo-service/domain/entities"
	domainerrors "crudhub/contexts/workspace/todo-service/domain/errors"
	"crudhub/contexts/workspace/todo-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&todoModel{})
}

func (r *Repository) CreateTodo(ctx context.Context, todo entities.Todo) error {
	row := todoModelFromEntity(todo)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrTodoAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetTodo(ctx context.Context, todoID string) (entities.Todo, error) {
	var row todoModel
	err := r.db.WithContext(ctx).
		Where("todo_id = ?", strings.TrimSpace(todoID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Todo{}, domainerrors.ErrTodoNotFound
		}
		return entities.Todo{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetOwnedTodo(ctx context.Context, todoID string, ownerID string) (entities.Todo, error) {
	var row todoModel
	err := r.db.WithContext(ctx).
		Where("todo_id = ? AND owner_id = ?", strings.TrimSpace(todoID), strings.TrimSpace(ownerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Todo{}, domainerrors.ErrTodoNotFound
		}
		return entities.Todo{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateTodo(ctx context.Context, todo entities.Todo) error {
	result := r.db.WithContext(ctx).
		Model(&todoModel{}).
		Where("todo_id = ?", strings.TrimSpace(todo.TodoID)).
		Updates(map[string]any{
			"title":       todo.Title,
			"description": todo.Description,
			"status":      string(todo.Status),
			"updated_at":  todo.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTodoNotFound
	}
	return nil
}

func (r *Repository) DeleteOwnedTodo(ctx context.Context, todoID string, ownerID string) error {
	result := r.db.WithContext(ctx).
		Where("todo_id = ? AND owner_id = ?", strings.TrimSpace(todoID), strings.TrimSpace(ownerID)).
		Delete(&todoModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTodoNotFound
	}
	r.logger.Debug("todo row deleted",
		"event", "todo_row_deleted",
		"module", "workspace/todo-service",
		"layer", "adapter",
		"todo_id", todoID,
	)
	return nil
}

func (r *Repository) ListTodos(ctx context.Context, filter ports.TodoFilter) ([]entities.Todo, error) {
	tx := r.db.WithContext(ctx).Model(&todoModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var rows []todoModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Todo, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type todoModel struct {
	TodoID      string    `gorm:"column:todo_id;primaryKey"`
	OwnerID     string    `gorm:"column:owner_id;index"`
	Title       string    `gorm:"column:title;size:100;not null"`
	Description string    `gorm:"column:description;size:500"`
	Status      string    `gorm:"column:status;index;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (todoModel) TableName() string {
	return "todos"
}

func todoModelFromEntity(item entities.Todo) todoModel {
	return todoModel{
		TodoID:      strings.TrimSpace(item.TodoID),
		OwnerID:     strings.TrimSpace(item.OwnerID),
		Title:       item.Title,
		Description: item.Description,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m todoModel) toEntity() entities.Todo {
	return entities.Todo{
		TodoID:      m.TodoID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entities.TodoStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
