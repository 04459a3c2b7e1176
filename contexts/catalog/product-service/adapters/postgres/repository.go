package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"crudhub/contexts/catalog/product-service/domain/entities"
	domainerrors "crudhub/contexts/catalog/product-service/domain/errors"
	"crudhub/contexts/catalog/product-service/ports"
	"crudhub/internal/shared/outbox"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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
	return r.db.WithContext(ctx).AutoMigrate(
		&productModel{},
		&idempotencyModel{},
		&outboxModel{},
		&eventDedupModel{},
	)
}

func (r *Repository) CreateProduct(
	ctx context.Context,
	product entities.Product,
	event ports.EventEnvelope,
	claim *ports.IdempotencyRecord,
) error {
	row := productModelFromEntity(product)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if claim != nil {
			if err := claimIdempotencyKeyTx(tx, *claim); err != nil {
				return err
			}
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrProductAlreadyExists
			}
			return err
		}
		return insertOutboxEnvelopeTx(tx, event)
	})
}

// claimIdempotencyKeyTx inserts the record, replacing a row that expired at
// or before claim.CreatedAt. A live row leaves nothing affected.
func claimIdempotencyKeyTx(tx *gorm.DB, claim ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:             strings.TrimSpace(claim.Key),
		RequestHash:     claim.RequestHash,
		ResponsePayload: append([]byte(nil), claim.ResponsePayload...),
		CreatedAt:       claim.CreatedAt.UTC(),
		ExpiresAt:       claim.ExpiresAt.UTC(),
	}
	result := tx.Clauses(replaceExpired(
		"product_idempotency", "key", claim.CreatedAt,
		"request_hash", "response_payload", "created_at", "expires_at",
	)).Create(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrIdempotencyKeyConflict
	}
	return nil
}

// replaceExpired upserts on key only when the stored row's expires_at is not
// after now.
func replaceExpired(table string, key string, now time.Time, columns ...string) clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: key}},
		DoUpdates: clause.AssignmentColumns(columns),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: table + ".expires_at <= ?", Vars: []any{now.UTC()}},
		}},
	}
}

func (r *Repository) UpdateProduct(ctx context.Context, product entities.Product, event ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&productModel{}).
			Where("product_id = ?", strings.TrimSpace(product.ProductID)).
			Updates(map[string]any{
				"name":        product.Name,
				"description": product.Description,
				"price":       product.Price,
				"quantity":    product.Quantity,
				"status":      string(product.Status),
				"updated_at":  product.UpdatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrProductNotFound
		}
		return insertOutboxEnvelopeTx(tx, event)
	})
}

func (r *Repository) GetProduct(ctx context.Context, productID string) (entities.Product, error) {
	var row productModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", strings.TrimSpace(productID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Product{}, domainerrors.ErrProductNotFound
		}
		return entities.Product{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]entities.Product, int, error) {
	tx := r.db.WithContext(ctx).Model(&productModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	} else {
		tx = tx.Where("status <> ?", string(entities.ProductStatusDeleted))
	}
	if filter.Name != "" {
		tx = tx.Where("name = ?", filter.Name)
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := tx.Order("created_at DESC").Order("product_id DESC").Offset(filter.Skip)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var rows []productModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toEntities(rows), int(total), nil
}

func (r *Repository) SearchProducts(ctx context.Context, query string, limit int) ([]entities.Product, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	tx := r.db.WithContext(ctx).
		Where("status <> ?", string(entities.ProductStatusDeleted)).
		Where("(name ILIKE ? OR description ILIKE ?)", pattern, pattern).
		Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var rows []productModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) GetRecord(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ?", strings.TrimSpace(key)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, err
	}

	if !row.ExpiresAt.UTC().After(now.UTC()) {
		if err := r.db.WithContext(ctx).
			Where("key = ? AND expires_at <= ?", row.Key, now.UTC()).
			Delete(&idempotencyModel{}).
			Error; err != nil {
			return ports.IdempotencyRecord{}, false, err
		}
		return ports.IdempotencyRecord{}, false, nil
	}

	return ports.IdempotencyRecord{
		Key:             row.Key,
		RequestHash:     row.RequestHash,
		ResponsePayload: append([]byte(nil), row.ResponsePayload...),
		CreatedAt:       row.CreatedAt.UTC(),
		ExpiresAt:       row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, outbox.Message{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			Status:       row.Status,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("outbox row vanished before publish mark",
			"event", "product_outbox_mark_missing",
			"module", "catalog/product-service",
			"layer", "adapter",
			"outbox_id", outboxID,
		)
	}
	return nil
}

func (r *Repository) ReserveEvent(
	ctx context.Context,
	eventID string,
	payloadHash string,
	now time.Time,
	expiresAt time.Time,
) (bool, error) {
	row := eventDedupModel{
		EventID:     strings.TrimSpace(eventID),
		PayloadHash: strings.TrimSpace(payloadHash),
		ExpiresAt:   expiresAt.UTC(),
		ProcessedAt: now.UTC(),
	}
	createResult := r.db.WithContext(ctx).
		Clauses(replaceExpired(
			"product_event_dedup", "event_id", now,
			"payload_hash", "expires_at", "processed_at",
		)).
		Create(&row)
	if createResult.Error != nil {
		return false, createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return false, nil
	}

	var existing eventDedupModel
	if err := r.db.WithContext(ctx).
		Select("payload_hash").
		Where("event_id = ?", row.EventID).
		First(&existing).
		Error; err != nil {
		return false, err
	}
	if existing.PayloadHash != row.PayloadHash {
		return false, domainerrors.ErrIdempotencyKeyConflict
	}
	return true, nil
}

func insertOutboxEnvelopeTx(tx *gorm.DB, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	createResult := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "outbox_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return nil
	}

	var existing outboxModel
	if err := tx.Select("payload").
		Where("outbox_id = ?", row.OutboxID).
		First(&existing).
		Error; err != nil {
		return err
	}
	if !bytes.Equal(existing.Payload, row.Payload) {
		return domainerrors.ErrIdempotencyKeyConflict
	}
	return nil
}

type productModel struct {
	ProductID   string    `gorm:"column:product_id;primaryKey"`
	Name        string    `gorm:"column:name;index;not null"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price;not null"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	Status      string    `gorm:"column:status;index;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productModel) TableName() string {
	return "products"
}

type idempotencyModel struct {
	Key             string    `gorm:"column:key;primaryKey"`
	RequestHash     string    `gorm:"column:request_hash"`
	ResponsePayload []byte    `gorm:"column:response_payload"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	ExpiresAt       time.Time `gorm:"column:expires_at;index"`
}

func (idempotencyModel) TableName() string {
	return "product_idempotency"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "product_outbox"
}

type eventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	PayloadHash string    `gorm:"column:payload_hash"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
}

func (eventDedupModel) TableName() string {
	return "product_event_dedup"
}

func productModelFromEntity(item entities.Product) productModel {
	return productModel{
		ProductID:   strings.TrimSpace(item.ProductID),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Quantity:    item.Quantity,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m productModel) toEntity() entities.Product {
	return entities.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Status:      entities.ProductStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func toEntities(rows []productModel) []entities.Product {
	items := make([]entities.Product, 0, len(rows))
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
