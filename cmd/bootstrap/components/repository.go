package components

import (
	"interpreter-booking/internal/infra/readrepo"
	"interpreter-booking/internal/infra/writerepo"
	"interpreter-booking/internal/usecase/commands"
	"interpreter-booking/internal/usecase/queries"
	"interpreter-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		shared.NewTxRunner,
		fx.Annotate(
			writerepo.NewJobRepository,
			fx.As(new(commands.JobRepository)),
		),
		fx.Annotate(
			writerepo.NewAssignmentRepository,
			fx.As(new(commands.AssignmentRepository)),
		),
		fx.Annotate(
			writerepo.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		// Read-side repositories for queries
		fx.Annotate(
			readrepo.NewJobViewRepository,
			fx.As(new(queries.JobViewRepo)),
		),
		fx.Annotate(
			readrepo.NewTranslatorReadRepository,
			fx.As(new(queries.TranslatorReads)),
		),
		fx.Annotate(
			readrepo.NewBlacklistReadRepository,
			fx.As(new(queries.BlacklistReads)),
		),
	),
)
