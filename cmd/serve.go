package cmd

import (
	"github.com/lambda-feedback/vercel-lambda/app"
	"github.com/lambda-feedback/vercel-lambda/app/standalone"
	"github.com/lambda-feedback/vercel-lambda/config"
	"github.com/lambda-feedback/vercel-lambda/util/conf"
	"github.com/lambda-feedback/vercel-lambda/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	serveCmdDescription = `The serve command starts a http server that emulates the
	platform. Each incoming request is wrapped into a platform
	event, dispatched to the handler like a real invocation,
	and the response document is written back as http.

	The command will launch the http server and blocks indefin-
	itely, processing incoming http requests.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server emulating the platform.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Category: "http",
				EnvVars:  []string{"HTTP_PORT", "PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx, factory)
	if err != nil {
		return err
	}

	globalCfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[standalone.Config](conf.ParseOptions{
		Cli: ctx,
		CliMap: map[string]string{
			"host": "http.host",
			"port": "http.port",
			"h2c":  "http.h2c",
		},
		Defaults: conf.MergeDefaults("http", conf.DefaultConfig{
			"host": globalCfg.Http.Host,
			"port": globalCfg.Http.Port,
			"h2c":  globalCfg.Http.H2c,
		}),
		Log: log,
	})
	if err != nil {
		return err
	}

	log.Info("starting emulator", zap.String("address", cfg.HttpConfig.Address()))

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
