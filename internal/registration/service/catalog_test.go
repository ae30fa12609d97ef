package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "caregate/pkg/domain"
)

func TestExpandServiceUnits(t *testing.T) {
	accountID := id.NewAccountID()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	units := ExpandServiceUnits(accountID, "Acme Care", []string{"AB12", "CD34", "AB12"}, "general care", now)

	require.Len(t, units, 3, "duplicates are preserved, one unit per code")
	assert.Equal(t, "Acme Care - AB12", units[0].Name)
	assert.Equal(t, "Acme Care - CD34", units[1].Name)
	assert.Equal(t, "Acme Care - AB12", units[2].Name)

	seen := map[string]bool{}
	for i, unit := range units {
		assert.Equal(t, accountID, unit.AccountID)
		assert.Equal(t, "general care", unit.Description)
		assert.Equal(t, "0", unit.BasePrice)
		assert.Equal(t, now, unit.CreatedAt)
		assert.False(t, seen[unit.ID.String()], "unit %d reuses an id", i)
		seen[unit.ID.String()] = true
	}
}

func TestExpandServiceUnitsEmpty(t *testing.T) {
	units := ExpandServiceUnits(id.NewAccountID(), "Acme Care", nil, "", time.Now())
	assert.Empty(t, units)
}
