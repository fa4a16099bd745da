package vercel

import (
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

// Config configures a Dispatcher.
type Config struct {
	// ValidateSchema checks request documents against the request JSON
	// schema before they are decoded.
	ValidateSchema bool `conf:"validate_schema"`

	// ExitOnMalformed asks the runtime to terminate the process after an
	// event that cannot be parsed has been reported.
	ExitOnMalformed bool `conf:"exit_on_malformed"`
}

// DefaultConfig is the configuration used when no options are given.
var DefaultConfig = Config{
	ValidateSchema: true,
}

type options struct {
	config        Config
	log           *zap.Logger
	errorMapper   ErrorMapper
	lambdaOptions []lambda.Option
}

func newOptions(opts []Option) options {
	o := options{
		config:      DefaultConfig,
		log:         zap.NewNop(),
		errorMapper: DefaultErrorMapper,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a Dispatcher.
type Option func(*options)

// WithConfig replaces the dispatcher configuration.
func WithConfig(config Config) Option {
	return func(o *options) { o.config = config }
}

// WithLogger sets the logger used by the dispatcher.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithErrorMapper sets the function converting handler errors into
// platform errors.
func WithErrorMapper(mapper ErrorMapper) Option {
	return func(o *options) {
		if mapper != nil {
			o.errorMapper = mapper
		}
	}
}

// WithExitOnMalformed makes unparseable events terminate the process.
func WithExitOnMalformed() Option {
	return func(o *options) { o.config.ExitOnMalformed = true }
}

// WithLambdaOptions passes options to the Lambda runtime on Start.
func WithLambdaOptions(opts ...lambda.Option) Option {
	return func(o *options) { o.lambdaOptions = append(o.lambdaOptions, opts...) }
}
