package components

import (
	"stamp-rally/internal/handler"
	"stamp-rally/internal/handler/api"
	"stamp-rally/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRewardHandler,
		api.NewImageHandler,
		api.NewChatHandler,
		middleware.NewSessionMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
