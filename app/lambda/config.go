package lambda

type Config struct {
	// Sigterm asks the runtime to forward SIGTERM to the process before
	// the execution environment is shut down.
	Sigterm bool `conf:"lambda_sigterm"`
}
