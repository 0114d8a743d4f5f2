package bootstrap

import (
	"time"

	"stamp-rally/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewLocation,
	),
)

// NewLocation is the zone every calendar-day computation runs in.
func NewLocation(cfg config.Config) *time.Location {
	return cfg.App.Location()
}
