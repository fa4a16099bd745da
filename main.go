package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lambda-feedback/vercel-lambda/app"
	"github.com/lambda-feedback/vercel-lambda/cmd"
	"github.com/lambda-feedback/vercel-lambda/internal/echo"
	"github.com/lambda-feedback/vercel-lambda/util"
)

var Version string
var Buildtime string
var Commit string

func main() {
	err := setupSentry()
	if err != nil {
		log.Fatalf("sentry init failed: %s", err)
	}

	defer flushSentry()

	appVersion := "local"
	if Version != "" {
		appVersion = Version
	}

	appBuildtime, _ := time.Parse(time.RFC3339, Buildtime)

	cmd.Execute(cmd.ExecuteParams{
		Version:    appVersion,
		Compiled:   appBuildtime,
		Dispatcher: app.Handler(echo.Handler()),
	})
}

func setupSentry() error {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return nil
	}

	environment := os.Getenv("SENTRY_ENVIRONMENT")
	if environment == "" {
		environment = os.Getenv("VERCEL_ENV")
	}
	if environment == "" {
		environment = "local"
	}

	release := Commit
	if release == "" {
		release = os.Getenv("VERCEL_GIT_COMMIT_SHA")
	}

	debug := util.Truthy(strings.ToLower(os.Getenv("SENTRY_DEBUG")))

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Debug:            debug,
		TracesSampleRate: 1.0,
		EnableTracing:    true,
		Environment:      environment,
		Release:          release,
	})
}

func flushSentry() {
	// flush buffered events before the program terminates
	sentry.Flush(2 * time.Second)
}
