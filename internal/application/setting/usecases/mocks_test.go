package usecases

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/discord"
)

// memSettingRepo keeps rows keyed by category and key.
type memSettingRepo struct {
	mu   sync.Mutex
	rows map[string]*setting.SystemSetting
	// failUpsert makes the nth Upsert (1-based) fail.
	failUpsert int
	upserts    int
}

func newMemSettingRepo() *memSettingRepo {
	return &memSettingRepo{rows: make(map[string]*setting.SystemSetting)}
}

func (r *memSettingRepo) GetByCategory(_ context.Context, category string) ([]*setting.SystemSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*setting.SystemSetting
	for _, s := range r.rows {
		if s.Category() == category {
			out = append(out, setting.ReconstructSystemSetting(s.ID(), s.Category(), s.Key(), s.Value(),
				s.ValueType(), s.UpdatedBy(), s.Version(), s.CreatedAt(), s.UpdatedAt()))
		}
	}
	return out, nil
}

func (r *memSettingRepo) Upsert(_ context.Context, s *setting.SystemSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.failUpsert > 0 && r.upserts == r.failUpsert {
		return context.DeadlineExceeded
	}
	r.rows[s.Category()+"/"+s.Key()] = s
	return nil
}

func (r *memSettingRepo) value(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.rows[setting.CategoryDiscord+"/"+key]; ok {
		return s.Value()
	}
	return ""
}

// passthroughTx runs fn without a database.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordedEntries struct {
	mu      sync.Mutex
	entries []activityApp.Entry
}

func (r *recordedEntries) Record(_ context.Context, e activityApp.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

type mockIdentityFetcher struct {
	mock.Mock
}

func (m *mockIdentityFetcher) GetCurrentUser(ctx context.Context, token string) (*discord.User, error) {
	args := m.Called(ctx, token)
	if u := args.Get(0); u != nil {
		return u.(*discord.User), args.Error(1)
	}
	return nil, args.Error(1)
}
