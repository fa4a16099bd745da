package vercel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// ErrAlreadyStarted is the panic value of a second call to Start.
var ErrAlreadyStarted = errors.New("lambda runtime already started")

var started atomic.Bool

type serveFunc func(context.Context, *Request[Body]) (*Response, error)

// Dispatcher runs the pipeline for each invocation: parse the event, call
// the handler once and build the response document. It implements
// lambda.Handler.
//
// Invocations are processed one at a time. A parse failure never reaches
// the handler, and a handler failure never produces a response document;
// both are returned as messages.InvokeResponse_Error.
type Dispatcher struct {
	mu sync.Mutex

	parser *Parser
	serve  serveFunc

	exitOnMalformed bool
	errorMapper     ErrorMapper
	lambdaOptions   []lambda.Option

	log *zap.Logger
}

var _ lambda.Handler = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher for h. It panics if h is nil.
func NewDispatcher[B BodyType, R IntoResponse](h Handler[B, R], opts ...Option) (*Dispatcher, error) {
	if isNilHandler(h) {
		panic("vercel: nil handler")
	}

	o := newOptions(opts)

	parser, err := NewParser(o.config.ValidateSchema)
	if err != nil {
		return nil, err
	}

	serve := func(ctx context.Context, req *Request[Body]) (*Response, error) {
		result, err := h.ServeEvent(ctx, MapRequest(req, ConvertBody[B]))
		if err != nil {
			return nil, err
		}
		return intoResponse(result), nil
	}

	return &Dispatcher{
		parser:          parser,
		serve:           serve,
		exitOnMalformed: o.config.ExitOnMalformed,
		errorMapper:     o.errorMapper,
		lambdaOptions:   o.lambdaOptions,
		log:             o.log,
	}, nil
}

// Invoke handles a single raw event and returns the encoded response
// document.
func (d *Dispatcher) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	log := d.log
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With(zap.String("request_id", lc.AwsRequestID))
	}

	req, err := d.parser.Parse(payload)
	if err != nil {
		log.Error("could not parse event", zap.Error(err))
		d.capture(ctx, err)

		res := parseError(err).InvokeError()
		res.ShouldExit = d.exitOnMalformed
		return nil, res
	}

	log = log.With(
		zap.String("method", req.Method),
		zap.String("path", req.Path),
	)

	log.Debug("parsed proxy request", zap.Stringer("body", req.Body))

	res, err := d.serve(ctx, req)
	if err != nil {
		log.Warn("handler failed", zap.Error(err))
		d.capture(ctx, err)
		return nil, d.mapError(err).InvokeError()
	}

	data, err := json.Marshal(NewProxyResponse(res))
	if err != nil {
		log.Error("could not encode response", zap.Error(err))
		d.capture(ctx, err)
		return nil, NewError("ResponseEncodeError", err.Error()).InvokeError()
	}

	log.Debug("handled event", zap.Int("status", res.StatusCode))

	return data, nil
}

// Start registers the dispatcher with the Lambda runtime and blocks while
// the runtime delivers events. opts are applied after the options given
// to NewDispatcher. It panics when called more than once per process.
func (d *Dispatcher) Start(opts ...lambda.Option) {
	if !started.CompareAndSwap(false, true) {
		panic(ErrAlreadyStarted)
	}

	options := append(append([]lambda.Option{}, d.lambdaOptions...), opts...)

	lambda.StartWithOptions(d, options...)
}

func (d *Dispatcher) mapError(err error) *Error {
	if verr := d.errorMapper(err); verr != nil {
		return verr
	}
	return DefaultErrorMapper(err)
}

func (d *Dispatcher) capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}

// Start creates a dispatcher for h and registers it with the Lambda
// runtime. It blocks and panics if the dispatcher cannot be created.
func Start[B BodyType, R IntoResponse](h Handler[B, R], opts ...Option) {
	d, err := NewDispatcher(h, opts...)
	if err != nil {
		panic(err)
	}

	d.Start()
}
