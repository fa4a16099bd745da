package cliflags_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/vercel-lambda/util/cliflags"
)

func TestProvider(t *testing.T) {
	var got map[string]any

	app := &cli.App{
		Name: "test",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "validate-schema", Value: true},
			&cli.StringFlag{Name: "log-level"},
		},
		Commands: []*cli.Command{{
			Name: "serve",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "port"},
				&cli.StringFlag{Name: "host"},
				&cli.DurationFlag{Name: "timeout"},
			},
			Action: func(ctx *cli.Context) error {
				mp, err := cliflags.Provider(ctx, ".", func(s string) string {
					if s == "port" {
						return "http.port"
					}
					return s
				}).Read()
				got = mp
				return err
			},
		}},
	}

	err := app.Run([]string{"test", "--validate-schema=false", "serve", "--port", "8080", "--timeout", "2s"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"port": 8080}, got["http"])
	assert.Equal(t, false, got["validate-schema"])
	assert.Equal(t, 2*time.Second, got["timeout"])
	assert.NotContains(t, got, "host")
	assert.NotContains(t, got, "log-level")
}

func TestProvider_ReadBytes(t *testing.T) {
	_, err := (&cliflags.CLIFlags{}).ReadBytes()
	assert.Error(t, err)
}
