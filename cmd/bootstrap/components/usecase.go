package components

import (
	"time"

	"stamp-rally/internal/pkg/clock"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	func(loc *time.Location) clock.Clock {
		return clock.NewRealClock(loc)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewRewardCommands,
		commands.NewImageCommands,
		commands.NewChatCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewProfileQueries,
		queries.NewImageQueries,
		queries.NewEventQueries,
	),
)
