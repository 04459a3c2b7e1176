package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"crudhub/contexts/workspace/task-service/domain/entities"
	domainerrors "crudhub/contexts/workspace/task-service/domain/errors"
	"crudhub/contexts/workspace/task-service/ports"

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
	return &Repository{db: db, logger: logger}
}

func (r *Repository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&taskModel{})
}

func (r *Repository) CreateTask(ctx context.Context, task entities.Task) error {
	row := taskModelFromEntity(task)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrTaskAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetTask(ctx context.Context, taskID string) (entities.Task, error) {
	var row taskModel
	err := r.db.WithContext(ctx).
		Where("task_id = ?", strings.TrimSpace(taskID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Task{}, domainerrors.ErrTaskNotFound
		}
		return entities.Task{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateTask(ctx context.Context, task entities.Task) error {
	result := r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("task_id = ?", strings.TrimSpace(task.TaskID)).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      string(task.Status),
			"due_date":    normalizeOptionalTime(task.DueDate),
			"updated_at":  task.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTaskNotFound
	}
	return nil
}

func (r *Repository) DeleteTask(ctx context.Context, taskID string) error {
	result := r.db.WithContext(ctx).
		Where("task_id = ?", strings.TrimSpace(taskID)).
		Delete(&taskModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTaskNotFound
	}
	return nil
}

func (r *Repository) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]entities.Task, int, error) {
	tx := r.db.WithContext(ctx).Model(&taskModel{})
	if title := strings.TrimSpace(filter.Title); title != "" {
		tx = tx.Where("title ILIKE ?", "%"+escapeLike(title)+"%")
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.DueFrom != nil {
		tx = tx.Where("due_date >= ?", filter.DueFrom.UTC())
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := tx.Order("created_at DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var rows []taskModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.Task, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	r.logger.Debug("tasks page loaded",
		"event", "tasks_page_loaded",
		"module", "workspace/task-service",
		"layer", "adapter",
		"total", total,
		"returned", len(items),
	)
	return items, int(total), nil
}

type taskModel struct {
	TaskID      string     `gorm:"column:task_id;primaryKey"`
	Title       string     `gorm:"column:title;size:100;not null"`
	Description string     `gorm:"column:description;size:500"`
	Status      string     `gorm:"column:status;index;not null"`
	DueDate     *time.Time `gorm:"column:due_date;index"`
	CreatedAt   time.Time  `gorm:"column:created_at;index"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (taskModel) TableName() string {
	return "crud_tasks"
}

func taskModelFromEntity(item entities.Task) taskModel {
	return taskModel{
		TaskID:      strings.TrimSpace(item.TaskID),
		Title:       item.Title,
		Description: item.Description,
		Status:      string(item.Status),
		DueDate:     normalizeOptionalTime(item.DueDate),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m taskModel) toEntity() entities.Task {
	return entities.Task{
		TaskID:      m.TaskID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entities.TaskStatus(m.Status),
		DueDate:     normalizeOptionalTime(m.DueDate),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
