// Package config loads process configuration from the environment.
// Backend endpoints are required and missing values fail startup.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"shipment-route-service/internal/domain"
)

type Config struct {
	Port string
	Host string

	SurrealDBURL  string
	SurrealDBUser string
	SurrealDBPass string

	XTDBURL string

	DragonflyURL  string
	DragonflyPass string

	OptimizerURL string

	// Shipment status applied after a route is selected. "accepted" moves
	// the shipment to its terminal state; "planned" reproduces the legacy
	// behavior of leaving it re-plannable.
	SelectedShipmentStatus domain.ShipmentStatus
}

var required = []string{
	"SURREALDB_URL",
	"SURREALDB_USER",
	"SURREALDB_PASS",
	"XTDB_URL",
	"DRAGONFLY_URL",
	"DRAGONFLY_PASS",
	"OPTIMIZER_URL",
}

// Load reads configuration from environment variables. Call
// godotenv.Load first if a .env file should participate.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "4000")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("SELECTED_SHIPMENT_STATUS", string(domain.ShipmentAccepted))

	var missing []string
	for _, name := range required {
		if strings.TrimSpace(v.GetString(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	selected := domain.ShipmentStatus(v.GetString("SELECTED_SHIPMENT_STATUS"))
	if err := selected.Validate(); err != nil {
		return nil, fmt.Errorf("SELECTED_SHIPMENT_STATUS: %w", err)
	}

	return &Config{
		Port:                   v.GetString("PORT"),
		Host:                   v.GetString("HOST"),
		SurrealDBURL:           v.GetString("SURREALDB_URL"),
		SurrealDBUser:          v.GetString("SURREALDB_USER"),
		SurrealDBPass:          v.GetString("SURREALDB_PASS"),
		XTDBURL:                v.GetString("XTDB_URL"),
		DragonflyURL:           v.GetString("DRAGONFLY_URL"),
		DragonflyPass:          v.GetString("DRAGONFLY_PASS"),
		OptimizerURL:           v.GetString("OPTIMIZER_URL"),
		SelectedShipmentStatus: selected,
	}, nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
