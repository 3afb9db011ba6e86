package components

import (
	"interpreter-booking/internal/domain/matching"
	"interpreter-booking/internal/pkg/clock"
	"interpreter-booking/internal/pkg/config"
	"interpreter-booking/internal/usecase/commands"
	"interpreter-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	func(cfg config.Config) (clock.Clock, error) {
		return clock.NewRealClock(cfg.Calendar)
	},
	func(cfg config.Config) config.BookingConfig {
		return cfg.Booking
	},
	func(cfg config.Config) config.GatewayConfig {
		return cfg.Gateway
	},
	matching.NewEngine,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		fx.Annotate(
			queries.NewBookingQueries,
			fx.As(new(queries.BookingQueries)),
			fx.As(new(commands.TranslatorPool)),
		),
	),
)
