package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activityApp "github.com/nitrodesk/nitrodesk/internal/application/activity"
	"github.com/nitrodesk/nitrodesk/internal/application/customer/dto"
	"github.com/nitrodesk/nitrodesk/internal/domain/activity"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/domain/setting"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

var scenarioNow = time.Date(2024, 1, 29, 12, 0, 0, 0, time.UTC)

type customerFixture struct {
	repo     *memCustomerRepo
	recorder *recordedEntries
	clock    biztime.Clock
	settings staticSettings
}

func newCustomerFixture() *customerFixture {
	return &customerFixture{
		repo:     newMemCustomerRepo(),
		recorder: &recordedEntries{},
		clock:    biztime.FixedClock(scenarioNow),
		settings: staticSettings{settings: setting.DefaultBotSettings()},
	}
}

func (f *customerFixture) create() *CreateCustomerUseCase {
	return NewCreateCustomerUseCase(f.repo, emptyNotificationRepo{}, f.settings, f.recorder, f.clock, logger.NewNopLogger())
}

func (f *customerFixture) seed(t *testing.T, discordID, username string) *dto.CustomerResponse {
	t.Helper()
	resp, err := f.create().Execute(context.Background(), dto.CreateCustomerRequest{
		DiscordID:       discordID,
		DiscordUsername: username,
		NitroType:       "BASIC",
		StartDate:       "2024-01-01",
		DurationMonths:  1,
	}, "admin")
	require.NoError(t, err)
	return resp
}

func TestCreateCustomer_DerivesView(t *testing.T) {
	f := newCustomerFixture()
	price := decimal.RequireFromString("9.99")

	resp, err := f.create().Execute(context.Background(), dto.CreateCustomerRequest{
		DiscordID:       "123456789012345678",
		DiscordUsername: "alice",
		NitroType:       "BASIC",
		StartDate:       "2024-01-01",
		DurationMonths:  1,
		Price:           &price,
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), resp.EndDate)
	assert.Equal(t, 2, resp.DaysLeft)
	assert.Equal(t, 60, resp.HoursLeft)
	assert.True(t, resp.IsExpiringSoon)
	assert.False(t, resp.IsExpired)
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.NotNil(t, resp.Notifications)

	require.Len(t, f.recorder.entries, 1)
	e := f.recorder.entries[0]
	assert.Equal(t, activity.ActionCreate, e.Action)
	assert.Equal(t, activity.EntityCustomer, e.EntityType)
	assert.Equal(t, resp.ID, e.EntityID)
	assert.Equal(t, "admin", e.ActorID)
}

func TestCreateCustomer_DuplicateDiscordID(t *testing.T) {
	f := newCustomerFixture()
	f.seed(t, "111", "alice")

	_, err := f.create().Execute(context.Background(), dto.CreateCustomerRequest{
		DiscordID:      "111",
		NitroType:      "CLASSIC",
		DurationMonths: 3,
	}, "")

	assert.True(t, errors.IsConflictError(err))
	assert.Len(t, f.recorder.entries, 1)
}

func TestCreateCustomer_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateCustomerRequest
	}{
		{"missing discord id", dto.CreateCustomerRequest{NitroType: "BASIC", DurationMonths: 1}},
		{"unknown nitro type", dto.CreateCustomerRequest{DiscordID: "1", NitroType: "GOLD", DurationMonths: 1}},
		{"zero duration", dto.CreateCustomerRequest{DiscordID: "1", NitroType: "BASIC"}},
		{"bad date", dto.CreateCustomerRequest{DiscordID: "1", NitroType: "BASIC", DurationMonths: 1, StartDate: "01/02/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCustomerFixture()
			_, err := f.create().Execute(context.Background(), tt.req, "")
			assert.True(t, errors.IsValidationError(err), "got %v", err)
			assert.Empty(t, f.recorder.entries)
		})
	}
}

func TestCreateCustomer_NegativePrice(t *testing.T) {
	f := newCustomerFixture()
	price := decimal.NewFromInt(-1)

	_, err := f.create().Execute(context.Background(), dto.CreateCustomerRequest{
		DiscordID: "1", NitroType: "BASIC", DurationMonths: 1, Price: &price,
	}, "")

	assert.True(t, errors.IsValidationError(err))
}

func TestGetCustomer_NotFound(t *testing.T) {
	f := newCustomerFixture()
	uc := NewGetCustomerUseCase(f.repo, emptyNotificationRepo{}, f.settings, f.clock, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), "cus_missing")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListCustomers(t *testing.T) {
	f := newCustomerFixture()
	f.seed(t, "111", "alice")
	f.seed(t, "222", "bob")
	uc := NewListCustomersUseCase(f.repo, emptyNotificationRepo{}, f.settings, f.clock, logger.NewNopLogger())

	all, err := uc.Execute(context.Background(), dto.ListCustomersRequest{Status: "ALL"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, 20, all.PageSize)

	found, err := uc.Execute(context.Background(), dto.ListCustomersRequest{Search: "bo"})
	require.NoError(t, err)
	require.Len(t, found.Customers, 1)
	assert.Equal(t, "bob", found.Customers[0].DiscordUsername)

	_, err = uc.Execute(context.Background(), dto.ListCustomersRequest{Status: "PAUSED"})
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateCustomer(t *testing.T) {
	f := newCustomerFixture()
	created := f.seed(t, "111", "alice")
	uc := NewUpdateCustomerUseCase(f.repo, emptyNotificationRepo{}, f.settings, f.recorder, f.clock, logger.NewNopLogger())

	months := 3
	notes := "paid via paypal"
	resp, err := uc.Execute(context.Background(), dto.UpdateCustomerRequest{
		ID:             created.ID,
		DurationMonths: &months,
		Notes:          &notes,
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), resp.EndDate)
	assert.False(t, resp.IsExpiringSoon)
	assert.Equal(t, notes, resp.Notes)

	require.Len(t, f.recorder.entries, 2)
	e := f.recorder.entries[1]
	assert.Equal(t, activity.ActionUpdate, e.Action)
	assert.Contains(t, e.Description, "durationMonths")
	assert.Contains(t, e.Description, "notes")
}

func TestUpdateCustomer_Errors(t *testing.T) {
	f := newCustomerFixture()
	alice := f.seed(t, "111", "alice")
	f.seed(t, "222", "bob")
	uc := NewUpdateCustomerUseCase(f.repo, emptyNotificationRepo{}, f.settings, f.recorder, f.clock, logger.NewNopLogger())
	ctx := context.Background()

	taken := "222"
	_, err := uc.Execute(ctx, dto.UpdateCustomerRequest{ID: alice.ID, DiscordID: &taken}, "")
	assert.True(t, errors.IsConflictError(err))

	_, err = uc.Execute(ctx, dto.UpdateCustomerRequest{ID: "cus_nope", Notes: &taken}, "")
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(ctx, dto.UpdateCustomerRequest{Notes: &taken}, "")
	assert.True(t, errors.IsValidationError(err))

	zero := 0
	_, err = uc.Execute(ctx, dto.UpdateCustomerRequest{ID: alice.ID, DurationMonths: &zero}, "")
	assert.True(t, errors.IsValidationError(err))

	stored, _ := f.repo.GetByID(ctx, alice.ID)
	assert.Equal(t, 1, stored.DurationMonths())
}

type failingActivityRepo struct {
	activity.Repository
}

func (failingActivityRepo) Append(context.Context, *activity.Entry) error {
	return stderrors.New("disk full")
}

func TestDeleteCustomer_SucceedsWhenAuditWriteFails(t *testing.T) {
	f := newCustomerFixture()
	created := f.seed(t, "111", "alice")

	recorder := activityApp.NewRecorder(failingActivityRepo{}, f.clock, nil, logger.NewNopLogger())
	uc := NewDeleteCustomerUseCase(f.repo, recorder, logger.NewNopLogger())

	require.NoError(t, uc.Execute(context.Background(), created.ID, "admin"))

	c, _ := f.repo.GetByID(context.Background(), created.ID)
	assert.Nil(t, c)

	err := uc.Execute(context.Background(), created.ID, "admin")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRenewCustomer(t *testing.T) {
	f := newCustomerFixture()
	created := f.seed(t, "111", "alice")

	var notified []string
	notifier := renewalNotifierFunc(func(_ context.Context, customerID, _ string) error {
		notified = append(notified, customerID)
		return errors.NewDeliveryError("discord down")
	})
	uc := NewRenewCustomerUseCase(f.repo, emptyNotificationRepo{}, f.settings, f.recorder, notifier, f.clock, logger.NewNopLogger())

	resp, err := uc.Execute(context.Background(), created.ID, dto.RenewCustomerRequest{Months: 2}, "admin")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), resp.EndDate)
	assert.Equal(t, 3, resp.DurationMonths)
	assert.Equal(t, []string{created.ID}, notified)

	last := f.recorder.entries[len(f.recorder.entries)-1]
	assert.Equal(t, activity.ActionUpdate, last.Action)
	assert.Contains(t, last.Description, "Renewed")
}

func TestRenewCustomer_LapsedRestartsAtNow(t *testing.T) {
	f := newCustomerFixture()
	c, err := customer.NewCustomer(customer.CreateParams{
		DiscordID:      "333",
		NitroType:      vo.NitroPremium,
		StartDate:      time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		DurationMonths: 1,
	}, scenarioNow)
	require.NoError(t, err)
	require.NoError(t, f.repo.Create(context.Background(), c))

	uc := NewRenewCustomerUseCase(f.repo, emptyNotificationRepo{}, f.settings, f.recorder, nil, f.clock, logger.NewNopLogger())
	resp, err := uc.Execute(context.Background(), c.ID(), dto.RenewCustomerRequest{Months: 1}, "")
	require.NoError(t, err)

	assert.Equal(t, scenarioNow, resp.StartDate)
	assert.Equal(t, scenarioNow.AddDate(0, 1, 0), resp.EndDate)
	assert.False(t, resp.IsExpired)
}
