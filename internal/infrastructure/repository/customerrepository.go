package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/mappers"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
	"github.com/nitrodesk/nitrodesk/internal/shared/db"
	apperrors "github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

type CustomerRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CustomerMapper
	logger logger.Interface
}

func NewCustomerRepository(db *gorm.DB, logger logger.Interface) customer.Repository {
	return &CustomerRepositoryImpl{
		db:     db,
		mapper: mappers.NewCustomerMapper(),
		logger: logger,
	}
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, c *customer.Customer) error {
	model := r.mapper.ToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return customer.ErrDuplicateDiscord
		}
		r.logger.Errorw("failed to create customer", "discord_id", c.DiscordID(), "error", err)
		return persistenceError("failed to create customer", err)
	}
	return nil
}

func (r *CustomerRepositoryImpl) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *CustomerRepositoryImpl) GetByDiscordID(ctx context.Context, discordID string) (*customer.Customer, error) {
	return r.first(ctx, "discord_id = ?", discordID)
}

func (r *CustomerRepositoryImpl) first(ctx context.Context, query string, arg any) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get customer", "query", query, "arg", arg, "error", err)
		return nil, persistenceError("failed to get customer", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, c *customer.Customer) error {
	model := r.mapper.ToModel(c)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.CustomerModel{}).
		Where("id = ?", c.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return customer.ErrDuplicateDiscord
		}
		r.logger.Errorw("failed to update customer", "id", c.ID(), "error", result.Error)
		return persistenceError("failed to update customer", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.CustomerModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete customer", "id", id, "error", result.Error)
		return persistenceError("failed to delete customer", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepositoryImpl) List(ctx context.Context, filter customer.Filter) ([]*customer.Customer, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.CustomerModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		query = query.Where("(discord_username LIKE ? ESCAPE '!' OR discord_id LIKE ? ESCAPE '!')", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count customers", "error", err)
		return nil, 0, persistenceError("failed to count customers", err)
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var list []*models.CustomerModel
	if err := query.Order("created_at DESC").Order("id ASC").Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list customers", "error", err)
		return nil, 0, persistenceError("failed to list customers", err)
	}

	customers, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomerRepositoryImpl) FindActiveStartedBefore(ctx context.Context, before time.Time) ([]*customer.Customer, error) {
	var list []*models.CustomerModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND start_date <= ?", vo.StatusActive.String(), before.UTC()).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		r.logger.Errorw("failed to scan active customers", "before", before, "error", err)
		return nil, persistenceError("failed to scan active customers", err)
	}
	return r.mapper.ToDomainList(list)
}

func (r *CustomerRepositoryImpl) MarkExpiredIfActive(ctx context.Context, id string, at time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.CustomerModel{}).
		Where("id = ? AND status = ?", id, vo.StatusActive.String()).
		Updates(map[string]any{
			"status":     vo.StatusExpired.String(),
			"updated_at": at.UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark customer expired", "id", id, "error", result.Error)
		return false, persistenceError("failed to mark customer expired", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *CustomerRepositoryImpl) CountByStatus(ctx context.Context) (map[vo.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CustomerModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to count customers by status", "error", err)
		return nil, persistenceError("failed to count customers by status", err)
	}

	counts := make(map[vo.Status]int64, len(rows))
	for _, row := range rows {
		counts[vo.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *CustomerRepositoryImpl) AggregateByNitroType(ctx context.Context) ([]customer.NitroTypeAggregate, error) {
	var rows []struct {
		NitroType string
		Count     int64
		Revenue   string
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CustomerModel{}).
		Select("nitro_type, COUNT(*) AS count, CAST(COALESCE(SUM(price), 0) AS CHAR) AS revenue").
		Group("nitro_type").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to aggregate customers by nitro type", "error", err)
		return nil, persistenceError("failed to aggregate customers", err)
	}

	out := make([]customer.NitroTypeAggregate, 0, len(rows))
	for _, row := range rows {
		agg := customer.NitroTypeAggregate{NitroType: vo.NitroType(row.NitroType), Count: row.Count}
		if rev, err := parseDecimal(row.Revenue); err == nil {
			agg.Revenue = rev.Round(2)
		} else {
			r.logger.Warnw("unparseable revenue sum", "nitro_type", row.NitroType, "value", row.Revenue, "error", err)
		}
		out = append(out, agg)
	}
	return out, nil
}
