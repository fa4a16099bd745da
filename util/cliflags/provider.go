// Package cliflags implements a koanf.Provider that reads the flags set
// on a cli.Context, including the flags of its parent commands.
package cliflags

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/maps"
	"github.com/urfave/cli/v2"
)

// CLIFlags provides the values of explicitly set cli flags.
type CLIFlags struct {
	mp map[string]any
}

// Provider returns a provider for the flags set on ctx. Flag names are
// passed through cb, if given. If delim is set, the resulting keys are
// unflattened by delim, so cb may map a flag onto a nested key.
func Provider(ctx *cli.Context, delim string, cb func(string) string) *CLIFlags {
	flags := visibleFlags(ctx)

	mp := make(map[string]any)

	// ctx.FlagNames only lists flags that were set, either on the
	// command line or through their env vars
	for _, name := range ctx.FlagNames() {
		flag, ok := flags[name]
		if !ok {
			continue
		}

		value, err := flagValue(ctx, flag)
		if err != nil {
			continue
		}

		key := name
		if cb != nil {
			key = cb(name)
		}
		mp[key] = value
	}

	if delim != "" {
		mp = maps.Unflatten(mp, delim)
	}

	return &CLIFlags{mp: mp}
}

// ReadBytes is not supported by the cli provider.
func (e *CLIFlags) ReadBytes() ([]byte, error) {
	return nil, errors.New("cli provider does not support this method")
}

// Read returns the loaded map[string]any.
func (e *CLIFlags) Read() (map[string]any, error) {
	return e.mp, nil
}

// visibleFlags indexes the flags of the app and of every command in the
// lineage of ctx by their primary name.
func visibleFlags(ctx *cli.Context) map[string]cli.Flag {
	flags := map[string]cli.Flag{}

	add := func(fs []cli.Flag) {
		for _, f := range fs {
			if _, ok := flags[f.Names()[0]]; !ok {
				flags[f.Names()[0]] = f
			}
		}
	}

	for _, c := range ctx.Lineage() {
		if c.Command != nil {
			add(c.Command.VisibleFlags())
		}
	}

	if ctx.App != nil {
		add(ctx.App.VisibleFlags())
	}

	return flags
}

func flagValue(ctx *cli.Context, flag cli.Flag) (any, error) {
	name := flag.Names()[0]

	switch flag.(type) {
	case *cli.StringFlag:
		return ctx.String(name), nil
	case *cli.StringSliceFlag:
		return ctx.StringSlice(name), nil
	case *cli.PathFlag:
		return ctx.Path(name), nil
	case *cli.IntFlag:
		return ctx.Int(name), nil
	case *cli.IntSliceFlag:
		return ctx.IntSlice(name), nil
	case *cli.Int64Flag:
		return ctx.Int64(name), nil
	case *cli.Int64SliceFlag:
		return ctx.Int64Slice(name), nil
	case *cli.UintFlag:
		return ctx.Uint(name), nil
	case *cli.BoolFlag:
		return ctx.Bool(name), nil
	case *cli.Float64Flag:
		return ctx.Float64(name), nil
	case *cli.Float64SliceFlag:
		return ctx.Float64Slice(name), nil
	case *cli.DurationFlag:
		return ctx.Duration(name), nil
	default:
		return nil, fmt.Errorf("unsupported flag type %T", flag)
	}
}
