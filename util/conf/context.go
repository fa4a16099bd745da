package conf

import (
	"context"
	"errors"
	"fmt"
)

type configKey struct{}

// ErrNoConfigInContext is returned when the context carries no config.
var ErrNoConfigInContext = errors.New("config not found in context")

// GetConfigFromContext returns the config stored by ContextWithConfig.
// It fails if the stored value is not a C.
func GetConfigFromContext[C any](ctx context.Context) (C, error) {
	var zero C

	value := ctx.Value(configKey{})
	if value == nil {
		return zero, ErrNoConfigInContext
	}

	config, ok := value.(C)
	if !ok {
		return zero, fmt.Errorf("config in context is %T, not %T", value, zero)
	}

	return config, nil
}

// ContextWithConfig returns a copy of ctx carrying config.
func ContextWithConfig[C any](ctx context.Context, config C) context.Context {
	return context.WithValue(ctx, configKey{}, config)
}
