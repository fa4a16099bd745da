package server

import "go.uber.org/fx"

// Module serves the routes of the handlers group on the address in config
// for the lifetime of the application.
func Module(config HttpConfig) fx.Option {
	return fx.Module("server",
		// provide config
		fx.Supply(config),
		// provide server bound to the app lifecycle
		fx.Provide(NewLifecycleServer),
		// force the server to be constructed
		fx.Invoke(func(*HttpServer) {}),
	)
}
