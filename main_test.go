package main

import (
	"testing"

	"entitlements-api/internal/domain/features"
	"entitlements-api/internal/domain/plans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalog(t *testing.T) {
	c, err := buildCatalog("")
	require.NoError(t, err)
	assert.Equal(t, features.DefaultCatalog().Names(), c.Names())

	c, err = buildCatalog("messages=premium")
	require.NoError(t, err)
	req, ok := c.Request(features.Messages)
	require.True(t, ok)
	assert.Equal(t, plans.TierPremium, req.RequiredTier)

	_, err = buildCatalog("messages=gold")
	assert.ErrorIs(t, err, plans.ErrUnknownTier)
}
