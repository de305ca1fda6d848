package usecases

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/template"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/services/markdown"
)

type memCustomerRepo struct {
	customer.Repository
	mu   sync.Mutex
	byID map[string]*customer.Customer
}

func newMemCustomerRepo(customers ...*customer.Customer) *memCustomerRepo {
	r := &memCustomerRepo{byID: make(map[string]*customer.Customer)}
	for _, c := range customers {
		r.byID[c.ID()] = c
	}
	return r
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memCustomerRepo) FindActiveStartedBefore(_ context.Context, before time.Time) ([]*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*customer.Customer
	for _, c := range r.byID {
		if c.Status() == vo.StatusActive && c.StartDate().Before(before) {
			out = append(out, c)
		}
	}
	// Map order is random; the selector must not depend on it.
	return out, nil
}

func (r *memCustomerRepo) MarkExpiredIfActive(_ context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.Status() != vo.StatusActive {
		return false, nil
	}
	expired, err := customer.ReconstructCustomer(c.ID(), c.DiscordID(), c.DiscordUsername(), c.DiscordAvatar(),
		c.NitroType(), c.StartDate(), c.DurationMonths(), c.Price(), c.Notes(), vo.StatusExpired, c.CreatedAt(), at)
	if err != nil {
		return false, err
	}
	r.byID[id] = expired
	return true, nil
}

func (r *memCustomerRepo) status(id string) vo.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id].Status()
}

type memNotificationRepo struct {
	mu      sync.Mutex
	records []*notification.Record
}

func (r *memNotificationRepo) Create(_ context.Context, rec *notification.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *memNotificationRepo) HasSuccessfulSince(_ context.Context, customerID string, t notification.Type, since time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.CustomerID() == customerID && rec.Type() == t && rec.Success() && !rec.SentAt().Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memNotificationRepo) List(_ context.Context, filter notification.Filter) ([]*notification.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.Record
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if filter.CustomerID != "" && rec.CustomerID() != filter.CustomerID {
			continue
		}
		if filter.Type != nil && rec.Type() != *filter.Type {
			continue
		}
		if filter.Success != nil && rec.Success() != *filter.Success {
			continue
		}
		out = append(out, rec)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *memNotificationRepo) RecentByCustomers(context.Context, []string, int) (map[string][]*notification.Record, error) {
	return nil, nil
}

func (r *memNotificationRepo) CountSuccessfulSince(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (r *memNotificationRepo) all() []*notification.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*notification.Record(nil), r.records...)
}

type delivered struct {
	token, channelID, userID, content string
}

// fakeDeliverer fails for the discord ids in failFor and calls onDeliver first.
type fakeDeliverer struct {
	mu        sync.Mutex
	calls     []delivered
	failFor   map[string]error
	onDeliver func(userID string)
}

func (d *fakeDeliverer) Deliver(_ context.Context, token, channelID, userID, content string) error {
	if d.onDeliver != nil {
		d.onDeliver(userID)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, delivered{token, channelID, userID, content})
	return d.failFor[userID]
}

func (d *fakeDeliverer) userIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]string, 0, len(d.calls))
	for _, c := range d.calls {
		ids = append(ids, c.userID)
	}
	return ids
}

type staticSettings struct {
	settings setting.BotSettings
}

func (s *staticSettings) BotSettings(context.Context) (setting.BotSettings, error) {
	return s.settings, nil
}

func activeBot() *staticSettings {
	b := setting.DefaultBotSettings()
	b.BotToken = "bot-token"
	b.IsBotActive = true
	b.NotificationChannelID = "channel-1"
	return &staticSettings{settings: b}
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

func (r *recordedEntries) snapshot() []activityApp.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]activityApp.Entry(nil), r.entries...)
}

func newRenderer(t *testing.T) *template.Renderer {
	t.Helper()
	r, err := template.NewRenderer("", markdown.NewMarkdownService(), logger.NewNopLogger())
	require.NoError(t, err)
	return r
}

func newCustomer(t *testing.T, id, discordID, username string, start time.Time, months int, status vo.Status) *customer.Customer {
	t.Helper()
	c, err := customer.ReconstructCustomer(id, discordID, username, "", vo.NitroBasic, start, months, nil, "", status, start, start)
	require.NoError(t, err)
	return c
}

func sortedStrings(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
