package bootstrap

import (
	"log/slog"

	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTInspector,
	),
)

func NewJWTInspector(cfg config.Config, logger *slog.Logger) *jwt.Inspector {
	inspector := jwt.NewInspector(cfg.Auth.JWTSecret)
	if !inspector.Verifies() {
		logger.Warn("AUTH_JWT_SECRET is not set; access tokens are forwarded but not used to scope user data")
	}
	return inspector
}
