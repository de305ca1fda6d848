package setting

import (
	"fmt"
	"strconv"
	"time"
)

type ValueType string

const (
	ValueTypeString ValueType = "string"
	ValueTypeInt    ValueType = "int"
	ValueTypeBool   ValueType = "bool"
	ValueTypeSecret ValueType = "secret"
)

func (v ValueType) IsValid() bool {
	switch v {
	case ValueTypeString, ValueTypeInt, ValueTypeBool, ValueTypeSecret:
		return true
	}
	return false
}

// SystemSetting is one key/value row of process-wide configuration, grouped by category.
type SystemSetting struct {
	id        uint
	category  string
	key       string
	value     string
	valueType ValueType
	updatedBy string
	version   int
	createdAt time.Time
	updatedAt time.Time
}

func NewSystemSetting(category, key string, valueType ValueType, now time.Time) (*SystemSetting, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if key == "" {
		return nil, ErrInvalidSettingKey
	}
	if !valueType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidValueType, valueType)
	}
	return &SystemSetting{
		category:  category,
		key:       key,
		valueType: valueType,
		version:   0,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSystemSetting(
	id uint,
	category, key, value string,
	valueType ValueType,
	updatedBy string,
	version int,
	createdAt, updatedAt time.Time,
) *SystemSetting {
	return &SystemSetting{
		id:        id,
		category:  category,
		key:       key,
		value:     value,
		valueType: valueType,
		updatedBy: updatedBy,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *SystemSetting) ID() uint             { return s.id }
func (s *SystemSetting) Category() string     { return s.category }
func (s *SystemSetting) Key() string          { return s.key }
func (s *SystemSetting) Value() string        { return s.value }
func (s *SystemSetting) ValueType() ValueType { return s.valueType }
func (s *SystemSetting) UpdatedBy() string    { return s.updatedBy }
func (s *SystemSetting) Version() int         { return s.version }
func (s *SystemSetting) CreatedAt() time.Time { return s.createdAt }
func (s *SystemSetting) UpdatedAt() time.Time { return s.updatedAt }

// SetID is for the persistence layer only.
func (s *SystemSetting) SetID(id uint) {
	s.id = id
}

// SetValue stores the raw encoded value and bumps the version.
func (s *SystemSetting) SetValue(value, updatedBy string, now time.Time) {
	s.value = value
	s.updatedBy = updatedBy
	s.version++
	s.updatedAt = now
}

func (s *SystemSetting) IntValue() (int, error) {
	if s.value == "" {
		return 0, nil
	}
	return strconv.Atoi(s.value)
}

func (s *SystemSetting) BoolValue() (bool, error) {
	if s.value == "" {
		return false, nil
	}
	return strconv.ParseBool(s.value)
}
