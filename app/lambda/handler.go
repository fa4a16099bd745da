package lambda

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/lambda-feedback/vercel-lambda/vercel"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LambdaHandlerParams represents the parameters required for
// the Lambda handler.
type LambdaHandlerParams struct {
	fx.In

	// Config is the configuration for the Lambda handler.
	Config Config

	// Dispatcher handles the events delivered by the runtime.
	Dispatcher *vercel.Dispatcher

	// Context is the context for the Lambda handler.
	Context context.Context

	// Logger is the logger for the Lambda handler.
	Logger *zap.Logger
}

type LambdaHandler struct {
	config     Config
	ctx        context.Context
	cancel     context.CancelFunc
	dispatcher *vercel.Dispatcher
	log        *zap.Logger
}

// NewLambdaHandler creates a new instance of LambdaHandler
// with the given parameters.
func NewLambdaHandler(params LambdaHandlerParams) *LambdaHandler {
	ctx, cancel := context.WithCancel(params.Context)

	return &LambdaHandler{
		config:     params.Config,
		ctx:        ctx,
		cancel:     cancel,
		dispatcher: params.Dispatcher,
		log:        params.Logger,
	}
}

// NewLifecycleHandler creates a new instance of LambdaHandler
// with the given parameters and attaches lifecycle hooks to
// start and stop the handler.
func NewLifecycleHandler(params LambdaHandlerParams, lc fx.Lifecycle) *LambdaHandler {
	handler := NewLambdaHandler(params)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go handler.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			handler.Shutdown()
			return nil
		},
	})
	return handler
}

// Start registers the dispatcher with the Lambda runtime and blocks
// while events are processed.
func (s *LambdaHandler) Start() {
	s.dispatcher.Start(s.options()...)
}

// Shutdown cancels the execution of the LambdaHandler.
func (s *LambdaHandler) Shutdown() {
	s.cancel()
}

func (s *LambdaHandler) options() []lambda.Option {
	opts := []lambda.Option{lambda.WithContext(s.ctx)}

	if s.config.Sigterm {
		s.log.Debug("forwarding SIGTERM to the handler")
		opts = append(opts, lambda.WithEnableSIGTERM(func() {
			s.log.Info("received SIGTERM, shutting down")
			_ = s.log.Sync()
		}))
	}

	return opts
}
