package components

import (
	"immoview/internal/pkg/clock"
	"immoview/internal/pkg/config"
	"immoview/internal/usecase"
	"immoview/internal/usecase/commands"
	"immoview/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) queries.BusinessHours {
		return queries.BusinessHours{
			StartHour: cfg.Scheduling.BusinessHoursStart,
			EndHour:   cfg.Scheduling.BusinessHoursEnd,
		}
	},
	func(cfg config.Config) commands.WindowDefaults {
		return commands.WindowDefaults{
			Timezone: cfg.Scheduling.DefaultTimezone,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewAvailabilityCommands,
		commands.NewAppointmentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewAvailabilityQueries,
		queries.NewAppointmentQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
