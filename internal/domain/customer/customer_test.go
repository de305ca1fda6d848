package customer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
)

func TestNewCustomer(t *testing.T) {
	now := date(2024, 1, 1)
	price := decimal.RequireFromString("9.99")

	c, err := NewCustomer(CreateParams{
		DiscordID:      " 123456789012345678 ",
		NitroType:      vo.NitroPremium,
		DurationMonths: 3,
		Price:          &price,
	}, now)
	require.NoError(t, err)

	assert.Contains(t, c.ID(), "cus_")
	assert.Equal(t, "123456789012345678", c.DiscordID())
	assert.Equal(t, now, c.StartDate())
	assert.Equal(t, vo.StatusActive, c.Status())
	assert.Equal(t, "<@123456789012345678>", c.DisplayName())
}

func TestNewCustomerValidation(t *testing.T) {
	now := date(2024, 1, 1)
	negative := decimal.NewFromInt(-1)

	_, err := NewCustomer(CreateParams{NitroType: vo.NitroBasic, DurationMonths: 1}, now)
	assert.Error(t, err)

	_, err = NewCustomer(CreateParams{DiscordID: "1", NitroType: "GOLD", DurationMonths: 1}, now)
	assert.Error(t, err)

	_, err = NewCustomer(CreateParams{DiscordID: "1", NitroType: vo.NitroBasic}, now)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = NewCustomer(CreateParams{DiscordID: "1", NitroType: vo.NitroBasic, DurationMonths: 1, Price: &negative}, now)
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestApplyIsAllOrNothing(t *testing.T) {
	c := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusActive)
	name := "bob"
	months := 0

	err := c.Apply(Patch{DiscordUsername: &name, DurationMonths: &months}, date(2024, 1, 2))
	require.ErrorIs(t, err, ErrInvalidDuration)
	assert.Equal(t, "alice", c.DiscordUsername())

	months = 2
	require.NoError(t, c.Apply(Patch{DiscordUsername: &name, DurationMonths: &months, ClearPrice: true}, date(2024, 1, 2)))
	assert.Equal(t, "bob", c.DiscordUsername())
	assert.Equal(t, date(2024, 3, 1), c.EndDate())
	assert.Nil(t, c.Price())
}

func TestRenew(t *testing.T) {
	t.Run("running subscription is extended", func(t *testing.T) {
		c := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusActive)
		require.NoError(t, c.Renew(2, date(2024, 1, 20)))
		assert.Equal(t, date(2024, 1, 1), c.StartDate())
		assert.Equal(t, date(2024, 4, 1), c.EndDate())
	})

	t.Run("lapsed subscription restarts", func(t *testing.T) {
		c := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusExpired)
		now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
		require.NoError(t, c.Renew(1, now))
		assert.Equal(t, now, c.StartDate())
		assert.Equal(t, 1, c.DurationMonths())
		assert.Equal(t, vo.StatusActive, c.Status())
	})

	t.Run("rejects zero months", func(t *testing.T) {
		c := newTestCustomer(t, date(2024, 1, 1), 1, vo.StatusActive)
		assert.ErrorIs(t, c.Renew(0, date(2024, 1, 2)), ErrInvalidDuration)
	})
}
