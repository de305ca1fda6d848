package setting

import "context"

type Repository interface {
	GetByCategory(ctx context.Context, category string) ([]*SystemSetting, error)
	// Upsert inserts or replaces the row identified by (category, key).
	Upsert(ctx context.Context, s *SystemSetting) error
}
