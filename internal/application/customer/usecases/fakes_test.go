package usecases

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
)

type memCustomerRepo struct {
	mu   sync.Mutex
	byID map[string]*customer.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byID: make(map[string]*customer.Customer)}
}

func (r *memCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if other.DiscordID() == c.DiscordID() {
			return customer.ErrDuplicateDiscord
		}
	}
	r.byID[c.ID()] = c
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memCustomerRepo) GetByDiscordID(_ context.Context, discordID string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.DiscordID() == discordID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID()]; !ok {
		return customer.ErrCustomerNotFound
	}
	r.byID[c.ID()] = c
	return nil
}

func (r *memCustomerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return customer.ErrCustomerNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memCustomerRepo) List(_ context.Context, filter customer.Filter) ([]*customer.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*customer.Customer
	for _, c := range r.byID {
		if filter.Status != nil && c.Status() != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(c.DiscordUsername(), filter.Search) && !strings.Contains(c.DiscordID(), filter.Search) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, int64(len(out)), nil
}

func (r *memCustomerRepo) FindActiveStartedBefore(context.Context, time.Time) ([]*customer.Customer, error) {
	return nil, nil
}

func (r *memCustomerRepo) MarkExpiredIfActive(context.Context, string, time.Time) (bool, error) {
	return false, nil
}

func (r *memCustomerRepo) CountByStatus(context.Context) (map[vo.Status]int64, error) {
	return nil, nil
}

func (r *memCustomerRepo) AggregateByNitroType(context.Context) ([]customer.NitroTypeAggregate, error) {
	return nil, nil
}

type emptyNotificationRepo struct {
	notification.Repository
}

func (emptyNotificationRepo) RecentByCustomers(context.Context, []string, int) (map[string][]*notification.Record, error) {
	return map[string][]*notification.Record{}, nil
}

type staticSettings struct {
	settings setting.BotSettings
}

func (s staticSettings) Stored(context.Context) (setting.BotSettings, error) {
	return s.settings, nil
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

type renewalNotifierFunc func(ctx context.Context, customerID, actorID string) error

func (f renewalNotifierFunc) SendRenewalNotification(ctx context.Context, customerID, actorID string) error {
	return f(ctx, customerID, actorID)
}
