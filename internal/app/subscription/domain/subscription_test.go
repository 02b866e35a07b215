package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
)

var now = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func TestExpiryFor(t *testing.T) {
	cases := map[settings.PlanID]time.Time{
		settings.Plan24h: time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC),
		settings.Plan1w:  time.Date(2024, 3, 17, 8, 0, 0, 0, time.UTC),
		settings.Plan1m:  time.Date(2024, 4, 10, 8, 0, 0, 0, time.UTC),
	}
	for plan, want := range cases {
		got, err := ExpiryFor(plan, now)
		require.NoError(t, err)
		assert.Equal(t, want, got, plan)
	}

	_, err := ExpiryFor("2y", now)
	assert.ErrorIs(t, err, settings.ErrUnknownPlan)
}

func TestHasAccess(t *testing.T) {
	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	assert.True(t, HasAccess(true, false, nil, now), "free video is open to anonymous viewers")
	assert.False(t, HasAccess(true, true, &future, now))
	assert.False(t, HasAccess(false, true, nil, now))
	assert.False(t, HasAccess(false, true, &past, now))
	assert.False(t, HasAccess(false, true, &now, now), "expiry must be strictly after now")
	assert.True(t, HasAccess(false, true, &future, now))
}

func TestNewSubscription(t *testing.T) {
	plan := settings.Plan{ID: settings.Plan1w, Name: "1 Semaine", Price: 5000}

	s, err := NewSubscription("u1", "u1@example.com", plan, " tx-9 ", now)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, StatusPending, s.Status)
	assert.Equal(t, int64(5000), s.Amount)
	assert.Equal(t, "tx-9", s.TransactionID)
	assert.Nil(t, s.ExpiryDate)

	_, err = NewSubscription("", "", plan, "tx", now)
	assert.ErrorIs(t, err, ErrAnonymous)
	_, err = NewSubscription("u1", "", plan, "  ", now)
	assert.ErrorIs(t, err, ErrEmptyTransactionID)
}

func TestSubscription_ConfirmAndLapse(t *testing.T) {
	s, err := NewSubscription("u1", "", settings.Plan{ID: settings.Plan24h, Price: 1000}, "tx", now)
	require.NoError(t, err)

	require.NoError(t, s.Confirm(now))
	assert.Equal(t, StatusActive, s.Status)
	require.NotNil(t, s.StartDate)
	require.NotNil(t, s.ExpiryDate)
	assert.Equal(t, now.Add(24*time.Hour), *s.ExpiryDate)
	assert.ErrorIs(t, s.Confirm(now), ErrAlreadyActive)

	assert.False(t, s.IsLapsed(now.Add(23*time.Hour)))
	assert.True(t, s.IsLapsed(now.Add(24*time.Hour)))
}
