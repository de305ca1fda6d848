package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/mappers"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
	"github.com/nitrodesk/nitrodesk/internal/shared/db"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// SystemSettingRepository implements setting.Repository
type SystemSettingRepository struct {
	db     *gorm.DB
	logger logger.Interface
	mapper mappers.SystemSettingMapper
}

func NewSystemSettingRepository(db *gorm.DB, logger logger.Interface) setting.Repository {
	return &SystemSettingRepository{
		db:     db,
		logger: logger,
		mapper: mappers.NewSystemSettingMapper(),
	}
}

func (r *SystemSettingRepository) GetByCategory(ctx context.Context, category string) ([]*setting.SystemSetting, error) {
	var list []*models.SystemSettingModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("category = ?", category).
		Order("setting_key ASC").
		Find(&list).Error
	if err != nil {
		r.logger.Errorw("failed to get settings by category", "category", category, "error", err)
		return nil, persistenceError("failed to get settings", err)
	}

	return r.mapper.ToDomainList(list), nil
}

func (r *SystemSettingRepository) Upsert(ctx context.Context, s *setting.SystemSetting) error {
	model := r.mapper.ToModel(s)
	// Conflicts resolve on (category, setting_key), never on the surrogate key.
	model.ID = 0

	err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "value_type", "updated_by", "version", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert setting", "category", s.Category(), "key", s.Key(), "error", err)
		return persistenceError("failed to save setting", err)
	}

	if s.ID() == 0 && model.ID != 0 {
		s.SetID(model.ID)
	}
	return nil
}
