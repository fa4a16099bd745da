package cmd

import (
	"github.com/lambda-feedback/vercel-lambda/app"
	"github.com/lambda-feedback/vercel-lambda/app/lambda"
	"github.com/lambda-feedback/vercel-lambda/util/conf"
	"github.com/lambda-feedback/vercel-lambda/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	lambdaCmdDescription = `The lambda command registers the handler with the AWS Lambda
runtime interface client that backs Vercel functions. Every
event delivered by the runtime is translated into a request,
handed to the handler exactly once, and the handler response
is returned as the invocation result.

The command blocks indefinitely, processing incoming events.`
	lambdaCmd = &cli.Command{
		Name:        "lambda",
		Usage:       "Run the handler on the Lambda runtime",
		Description: lambdaCmdDescription,
		Action:      lambdaAction,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:     "lambda-sigterm",
				Usage:    "shut down gracefully when the runtime forwards SIGTERM.",
				Category: "lambda",
				EnvVars:  []string{"LAMBDA_SIGTERM"},
			},
		},
	}
)

func lambdaAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx, factory)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[lambda.Config](conf.ParseOptions{
		Log: log,
		Cli: ctx,
	})
	if err != nil {
		return err
	}

	log.Info("starting Lambda handler")

	return app.Run(ctx.Context, lambda.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, lambdaCmd)
}
