package users

import (
	"testing"
	"time"

	"entitlements-api/internal/domain/subscription"
	"entitlements-api/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAlertDTO_HidesDaysWhenQuiet(t *testing.T) {
	d := 20
	dto := BuildAlertDTO(subscription.AlertInput{Status: subscription.StatusActive, DaysRemaining: &d}, subscription.AlertNone)
	assert.Equal(t, "none", dto.Level)
	assert.Nil(t, dto.DaysRemaining)

	d = 2
	dto = BuildAlertDTO(subscription.AlertInput{Status: subscription.StatusActive, DaysRemaining: &d}, subscription.AlertWarning)
	require.NotNil(t, dto.DaysRemaining)
	assert.Equal(t, 2, *dto.DaysRemaining)
}

func TestBuildTrialDTO(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := now.Add(10 * 24 * time.Hour)

	assert.Nil(t, BuildTrialDTO(now, nil, &end))

	dto := BuildTrialDTO(now, &now, &end)
	require.NotNil(t, dto)
	require.NotNil(t, dto.DaysLeft)
	assert.Equal(t, 10, *dto.DaysLeft)
}

func TestBuildSubscriptionDTO(t *testing.T) {
	assert.Nil(t, BuildSubscriptionDTO(users.User{}))
	assert.Nil(t, BuildPlanDTO(nil))

	sub, status := "sub_9", "unpaid"
	dto := BuildSubscriptionDTO(users.User{SubscriptionId: &sub, StripeSubscriptionStatus: &status})
	require.NotNil(t, dto)
	assert.Equal(t, "past_due", dto.Status)
}
