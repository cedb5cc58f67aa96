package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when no audit record has the requested ID.
var ErrRecordNotFound = errors.New("operation record not found")

type gormOperationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOperationRepository creates a new GORM-based OperationRepository implementation
func NewGormOperationRepository(db *gorm.DB, logger logger.Logger) (audit.OperationRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &gormOperationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormOperationRepository) Create(ctx context.Context, record *audit.OperationRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.OperationModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create operation record: %w", err)
	}

	r.logger.InfoContext(ctx, "Created operation record", "id", record.ID, "operation", string(record.Operation))
	return nil
}

func (r *gormOperationRepository) List(ctx context.Context, query *audit.OperationQuery) ([]*audit.OperationRecord, error) {
	if query == nil {
		query = audit.NewOperationQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.OperationModel
	dbQuery := r.db.WithContext(ctx).Model(&models.OperationModel{})

	if query.Operation != "" {
		dbQuery = dbQuery.Where("operation = ?", string(query.Operation))
	}
	if query.Outcome != "" {
		dbQuery = dbQuery.Where("outcome = ?", string(query.Outcome))
	}
	if query.SessionID != "" {
		dbQuery = dbQuery.Where("session_id = ?", query.SessionID)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		// SortBy and SortOrder are restricted to a fixed set by query.Validate
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch operation records: %w", err)
	}

	domainList := make([]*audit.OperationRecord, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormOperationRepository) GetByID(ctx context.Context, recordID string) (*audit.OperationRecord, error) {
	var model models.OperationModel
	if err := r.db.WithContext(ctx).Where("id = ?", recordID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("operation record with ID %s: %w", recordID, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to fetch operation record: %w", err)
	}
	return model.ToDomain(), nil
}
