package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/mappers"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
	"github.com/nitrodesk/nitrodesk/internal/shared/db"
)

// ActivityLogRepositoryImpl only inserts and reads; the audit log has no update path.
type ActivityLogRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ActivityLogMapper
}

func NewActivityLogRepository(db *gorm.DB) activity.Repository {
	return &ActivityLogRepositoryImpl{
		db:     db,
		mapper: mappers.NewActivityLogMapper(),
	}
}

func (r *ActivityLogRepositoryImpl) Append(ctx context.Context, e *activity.Entry) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(e)).Error; err != nil {
		return persistenceError("failed to append activity entry", err)
	}
	return nil
}

func (r *ActivityLogRepositoryImpl) List(ctx context.Context, filter activity.Filter) ([]*activity.Entry, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ActivityLogModel{})
	if filter.Action != nil {
		query = query.Where("action = ?", string(*filter.Action))
	}
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", string(*filter.EntityType))
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var list []*models.ActivityLogModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, persistenceError("failed to list activity entries", err)
	}
	return r.mapper.ToDomainList(list), nil
}
