package config

import (
	"github.com/lambda-feedback/vercel-lambda/internal/server"
	"github.com/lambda-feedback/vercel-lambda/util/conf"
	"github.com/lambda-feedback/vercel-lambda/vercel"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Dispatch is the configuration of the event dispatcher
	Dispatch vercel.Config `conf:"dispatch"`

	// Http is the configuration of the local emulator server
	Http server.HttpConfig `conf:"http"`
}

// DefaultConfig holds the defaults applied before env vars, config
// files and cli flags are loaded.
var DefaultConfig = conf.DefaultConfig{
	"dispatch.validate_schema":   vercel.DefaultConfig.ValidateSchema,
	"dispatch.exit_on_malformed": vercel.DefaultConfig.ExitOnMalformed,
	"http.host":                  "localhost",
	"http.port":                  3000,
	"http.h2c":                   false,
}
