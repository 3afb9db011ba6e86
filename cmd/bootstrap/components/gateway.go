package components

import (
	"interpreter-booking/internal/infra/gateway"
	"interpreter-booking/internal/notify"
	"interpreter-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			gateway.NewPushClient,
			fx.As(new(notify.PushGateway)),
		),
		fx.Annotate(
			gateway.NewSMSClient,
			fx.As(new(notify.SMSGateway)),
		),
		fx.Annotate(
			gateway.NewMailClient,
			fx.As(new(notify.MailGateway)),
		),
		fx.Annotate(
			notify.NewDispatcher,
			fx.As(new(commands.Notifier)),
		),
	),
)
