package mappers

import (
	"gorm.io/datatypes"

	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
)

type ActivityLogMapper interface {
	ToDomain(model *models.ActivityLogModel) *activity.Entry
	ToModel(e *activity.Entry) *models.ActivityLogModel
	ToDomainList(list []*models.ActivityLogModel) []*activity.Entry
}

type ActivityLogMapperImpl struct{}

func NewActivityLogMapper() ActivityLogMapper {
	return &ActivityLogMapperImpl{}
}

func (m *ActivityLogMapperImpl) ToDomain(model *models.ActivityLogModel) *activity.Entry {
	if model == nil {
		return nil
	}
	return activity.ReconstructEntry(
		model.ID,
		activity.Action(model.Action),
		activity.EntityType(model.EntityType),
		model.EntityID,
		model.Description,
		model.ActorID,
		map[string]any(model.Metadata),
		model.CreatedAt,
	)
}

func (m *ActivityLogMapperImpl) ToModel(e *activity.Entry) *models.ActivityLogModel {
	if e == nil {
		return nil
	}
	model := &models.ActivityLogModel{
		ID:          e.ID(),
		Action:      string(e.Action()),
		EntityType:  string(e.EntityType()),
		EntityID:    e.EntityID(),
		Description: e.Description(),
		ActorID:     e.ActorID(),
		CreatedAt:   e.CreatedAt(),
	}
	if len(e.Metadata()) > 0 {
		model.Metadata = datatypes.JSONMap(e.Metadata())
	}
	return model
}

func (m *ActivityLogMapperImpl) ToDomainList(list []*models.ActivityLogModel) []*activity.Entry {
	out := make([]*activity.Entry, 0, len(list))
	for _, model := range list {
		out = append(out, m.ToDomain(model))
	}
	return out
}
