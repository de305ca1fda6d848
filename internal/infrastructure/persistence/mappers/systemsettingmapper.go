package mappers

import (
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
)

// SystemSettingMapper provides methods for converting between domain and model
type SystemSettingMapper interface {
	ToDomain(model *models.SystemSettingModel) *setting.SystemSetting
	ToModel(s *setting.SystemSetting) *models.SystemSettingModel
	ToDomainList(list []*models.SystemSettingModel) []*setting.SystemSetting
}

type SystemSettingMapperImpl struct{}

func NewSystemSettingMapper() SystemSettingMapper {
	return &SystemSettingMapperImpl{}
}

func (m *SystemSettingMapperImpl) ToDomain(model *models.SystemSettingModel) *setting.SystemSetting {
	if model == nil {
		return nil
	}
	return setting.ReconstructSystemSetting(
		model.ID,
		model.Category,
		model.SettingKey,
		model.Value,
		setting.ValueType(model.ValueType),
		model.UpdatedBy,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *SystemSettingMapperImpl) ToModel(s *setting.SystemSetting) *models.SystemSettingModel {
	if s == nil {
		return nil
	}
	return &models.SystemSettingModel{
		ID:         s.ID(),
		Category:   s.Category(),
		SettingKey: s.Key(),
		Value:      s.Value(),
		ValueType:  string(s.ValueType()),
		UpdatedBy:  s.UpdatedBy(),
		Version:    s.Version(),
		CreatedAt:  s.CreatedAt(),
		UpdatedAt:  s.UpdatedAt(),
	}
}

func (m *SystemSettingMapperImpl) ToDomainList(list []*models.SystemSettingModel) []*setting.SystemSetting {
	out := make([]*setting.SystemSetting, 0, len(list))
	for _, model := range list {
		if s := m.ToDomain(model); s != nil {
			out = append(out, s)
		}
	}
	return out
}
