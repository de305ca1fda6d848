package mappers

import (
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
)

type NotificationRecordMapper interface {
	ToDomain(model *models.NotificationRecordModel) *notification.Record
	ToModel(r *notification.Record) *models.NotificationRecordModel
	ToDomainList(list []*models.NotificationRecordModel) []*notification.Record
}

type NotificationRecordMapperImpl struct{}

func NewNotificationRecordMapper() NotificationRecordMapper {
	return &NotificationRecordMapperImpl{}
}

func (m *NotificationRecordMapperImpl) ToDomain(model *models.NotificationRecordModel) *notification.Record {
	if model == nil {
		return nil
	}
	return notification.ReconstructRecord(
		model.ID,
		model.CustomerID,
		model.DiscordID,
		model.DiscordUsername,
		notification.Type(model.Type),
		model.Message,
		model.SentAt,
		model.Success,
		model.Error,
		model.CycleID,
		model.WindowStart,
	)
}

func (m *NotificationRecordMapperImpl) ToModel(r *notification.Record) *models.NotificationRecordModel {
	if r == nil {
		return nil
	}
	return &models.NotificationRecordModel{
		ID:              r.ID(),
		CustomerID:      r.CustomerID(),
		DiscordID:       r.DiscordID(),
		DiscordUsername: r.DiscordUsername(),
		Type:            string(r.Type()),
		Message:         r.Message(),
		SentAt:          r.SentAt(),
		Success:         r.Success(),
		Error:           r.Error(),
		CycleID:         r.CycleID(),
		WindowStart:     r.WindowStart(),
	}
}

func (m *NotificationRecordMapperImpl) ToDomainList(list []*models.NotificationRecordModel) []*notification.Record {
	out := make([]*notification.Record, 0, len(list))
	for _, model := range list {
		out = append(out, m.ToDomain(model))
	}
	return out
}
