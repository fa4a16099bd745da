package standalone

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/vercel-lambda/handler"
	"github.com/lambda-feedback/vercel-lambda/internal/server"
	"github.com/lambda-feedback/vercel-lambda/util/logging"
)

// Module serves the platform emulator over http. The dispatcher is
// expected to be provided by the shared app module.
func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// name the emulator logs
		logging.DecorateLogger("serve"),
		// emulator and health routes
		handler.Module(),
		// http server consuming the routes
		server.Module(config.HttpConfig),
	)
}
