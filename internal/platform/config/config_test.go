package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-route-service/internal/domain"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SURREALDB_URL", "ws://surrealdb:8000")
	t.Setenv("SURREALDB_USER", "root")
	t.Setenv("SURREALDB_PASS", "root")
	t.Setenv("XTDB_URL", "http://xtdb:3000")
	t.Setenv("DRAGONFLY_URL", "redis://dragonfly:6379")
	t.Setenv("DRAGONFLY_PASS", "secret")
	t.Setenv("OPTIMIZER_URL", "http://optimizer:8090")
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when optional variables are unset", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PORT", "")
		t.Setenv("HOST", "")
		t.Setenv("SELECTED_SHIPMENT_STATUS", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "4000", cfg.Port)
		assert.Equal(t, "0.0.0.0", cfg.Host)
		assert.Equal(t, domain.ShipmentAccepted, cfg.SelectedShipmentStatus)
		assert.Equal(t, "0.0.0.0:4000", cfg.Addr())
	})

	t.Run("every missing required variable is named", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SURREALDB_URL", "")
		t.Setenv("OPTIMIZER_URL", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SURREALDB_URL")
		assert.Contains(t, err.Error(), "OPTIMIZER_URL")
	})

	t.Run("legacy selected status is honored", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SELECTED_SHIPMENT_STATUS", "planned")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, domain.ShipmentPlanned, cfg.SelectedShipmentStatus)
	})

	t.Run("unknown selected status fails startup", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SELECTED_SHIPMENT_STATUS", "shipped")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SELECTED_SHIPMENT_STATUS")
	})
}
