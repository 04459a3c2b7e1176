package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"crudhub/contexts/catalog/example-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/example-service/domain/errors"
	"crudhub/contexts/catalog/example-service/ports"

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
	return r.db.WithContext(ctx).AutoMigrate(&exampleModel{})
}

func (r *Repository) CreateExample(ctx context.Context, example entities.Example) error {
	row := exampleModelFromEntity(example)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrExampleAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetExample(ctx context.Context, exampleID string) (entities.Example, error) {
	var row exampleModel
	err := r.db.WithContext(ctx).
		Where("example_id = ?", strings.TrimSpace(exampleID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Example{}, domainerrors.ErrExampleNotFound
		}
		return entities.Example{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateExample(ctx context.Context, example entities.Example) error {
	result := r.db.WithContext(ctx).
		Model(&exampleModel{}).
		Where("example_id = ?", strings.TrimSpace(example.ExampleID)).
		Updates(map[string]any{
			"name":        example.Name,
			"description": example.Description,
			"status":      string(example.Status),
			"updated_at":  example.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrExampleNotFound
	}
	return nil
}

func (r *Repository) DeleteExample(ctx context.Context, exampleID string) error {
	result := r.db.WithContext(ctx).
		Where("example_id = ?", strings.TrimSpace(exampleID)).
		Delete(&exampleModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrExampleNotFound
	}
	return nil
}

func (r *Repository) ListExamples(ctx context.Context, filter ports.ExampleFilter) ([]entities.Example, int, error) {
	tx := r.db.WithContext(ctx).Model(&exampleModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query := tx.Order("created_at DESC").Offset(filter.Skip)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var rows []exampleModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toEntities(rows), int(total), nil
}

func (r *Repository) FindByName(ctx context.Context, fragment string) ([]entities.Example, error) {
	var rows []exampleModel
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+escapeLike(strings.TrimSpace(fragment))+"%").
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) DeleteByStatus(ctx context.Context, status entities.ExampleStatus) (int, error) {
	result := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Delete(&exampleModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	r.logger.Debug("examples bulk deleted",
		"event", "examples_bulk_deleted",
		"module", "catalog/example-service",
		"layer", "adapter",
		"status", string(status),
		"rows", result.RowsAffected,
	)
	return int(result.RowsAffected), nil
}

type exampleModel struct {
	ExampleID   string    `gorm:"column:example_id;primaryKey"`
	Name        string    `gorm:"column:name;index;not null"`
	Description string    `gorm:"column:description"`
	Status      string    `gorm:"column:status;index;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (exampleModel) TableName() string {
	return "examples"
}

func exampleModelFromEntity(item entities.Example) exampleModel {
	return exampleModel{
		ExampleID:   strings.TrimSpace(item.ExampleID),
		Name:        item.Name,
		Description: item.Description,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m exampleModel) toEntity() entities.Example {
	return entities.Example{
		ExampleID:   m.ExampleID,
		Name:        m.Name,
		Description: m.Description,
		Status:      entities.ExampleStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func toEntities(rows []exampleModel) []entities.Example {
	items := make([]entities.Example, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
