package app

import (
	"github.com/lambda-feedback/vercel-lambda/config"
	"github.com/lambda-feedback/vercel-lambda/internal/shell"
	"github.com/lambda-feedback/vercel-lambda/util/conf"
	"github.com/lambda-feedback/vercel-lambda/util/logging"
	"github.com/lambda-feedback/vercel-lambda/vercel"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// DispatcherFactory creates the dispatcher served by the application.
type DispatcherFactory func(opts ...vercel.Option) (*vercel.Dispatcher, error)

// Handler returns a factory dispatching events to h.
func Handler[B vercel.BodyType, R vercel.IntoResponse](h vercel.Handler[B, R]) DispatcherFactory {
	return func(opts ...vercel.Option) (*vercel.Dispatcher, error) {
		return vercel.NewDispatcher(h, opts...)
	}
}

func New(ctx *cli.Context, factory DispatcherFactory) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide dispatch config
		fx.Supply(config.Dispatch),
		// provide dispatcher
		fx.Provide(func(cfg vercel.Config, log *zap.Logger) (*vercel.Dispatcher, error) {
			return factory(
				vercel.WithConfig(cfg),
				vercel.WithLogger(log.Named("dispatch")),
			)
		}),
	)

	return shell.New(log, sharedModule), nil
}
