package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/vercel-lambda/config"
	"github.com/lambda-feedback/vercel-lambda/util/conf"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Defaults: config.DefaultConfig,
	})
	require.NoError(t, err)

	assert.True(t, cfg.Dispatch.ValidateSchema)
	assert.False(t, cfg.Dispatch.ExitOnMalformed)
	assert.Equal(t, "localhost:3000", cfg.Http.Address())
	assert.False(t, cfg.Http.H2c)
}

func TestConfig_Env(t *testing.T) {
	t.Setenv("DISPATCH__EXIT_ON_MALFORMED", "true")
	t.Setenv("HTTP__H2C", "1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Defaults: config.DefaultConfig,
	})
	require.NoError(t, err)

	assert.True(t, cfg.Dispatch.ExitOnMalformed)
	assert.True(t, cfg.Http.H2c)
	assert.Equal(t, "debug", cfg.LogLevel)
}
