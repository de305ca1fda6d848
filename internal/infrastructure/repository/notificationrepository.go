package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/mappers"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
	"github.com/nitrodesk/nitrodesk/internal/shared/db"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.NotificationRecordMapper
	logger logger.Interface
}

func NewNotificationRepository(db *gorm.DB, logger logger.Interface) notification.Repository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mappers.NewNotificationRecordMapper(),
		logger: logger,
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, rec *notification.Record) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(rec)).Error; err != nil {
		r.logger.Errorw("failed to create notification record", "customer_id", rec.CustomerID(), "error", err)
		return persistenceError("failed to create notification record", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) HasSuccessfulSince(ctx context.Context, customerID string, t notification.Type, since time.Time) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.NotificationRecordModel{}).
		Where("customer_id = ? AND type = ? AND success = ? AND sent_at >= ?", customerID, string(t), true, since.UTC()).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check notification history", "customer_id", customerID, "error", err)
		return false, persistenceError("failed to check notification history", err)
	}
	return count > 0, nil
}

func (r *NotificationRepositoryImpl) List(ctx context.Context, filter notification.Filter) ([]*notification.Record, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.NotificationRecordModel{})
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Success != nil {
		query = query.Where("success = ?", *filter.Success)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var list []*models.NotificationRecordModel
	if err := query.Order("sent_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list notification records", "error", err)
		return nil, persistenceError("failed to list notification records", err)
	}
	return r.mapper.ToDomainList(list), nil
}

func (r *NotificationRepositoryImpl) RecentByCustomers(ctx context.Context, customerIDs []string, perCustomer int) (map[string][]*notification.Record, error) {
	out := make(map[string][]*notification.Record, len(customerIDs))
	if len(customerIDs) == 0 || perCustomer <= 0 {
		return out, nil
	}

	var list []*models.NotificationRecordModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("customer_id IN ?", customerIDs).
		Order("sent_at DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Errorw("failed to load recent notifications", "customers", len(customerIDs), "error", err)
		return nil, persistenceError("failed to load recent notifications", err)
	}

	for _, rec := range r.mapper.ToDomainList(list) {
		if len(out[rec.CustomerID()]) < perCustomer {
			out[rec.CustomerID()] = append(out[rec.CustomerID()], rec)
		}
	}
	return out, nil
}

func (r *NotificationRepositoryImpl) CountSuccessfulSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.NotificationRecordModel{}).
		Where("success = ? AND sent_at >= ?", true, since.UTC()).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count notifications", "since", since, "error", err)
		return 0, persistenceError("failed to count notifications", err)
	}
	return count, nil
}
