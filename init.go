// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

package globalconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iph0/globalconf/merger"
)

const (
	// DefaultEnvVar is the environment variable, that selects the environment
	// configuration source.
	DefaultEnvVar = "APP_ENV"

	// DefaultEnvName is the environment used when the selector is not set or
	// the selected environment has no configuration source.
	DefaultEnvName = "development"
)

// Provider is an interface for configuration source providers used by Init.
// Both methods must return an error wrapping ErrSourceNotFound if the source
// does not exist. Methods can be called concurrently.
type Provider interface {
	// LoadBase loads the base configuration, e.g. "common" or "default".
	LoadBase(ctx context.Context) (M, error)

	// LoadEnv loads the configuration of the named environment.
	LoadEnv(ctx context.Context, name string) (M, error)
}

// Options is a structure with parameters for Init.
type Options struct {
	// Provider supplies configuration sources. Required.
	Provider Provider

	// EnvVar is the name of the environment variable that selects the
	// environment. Defaults to DefaultEnvVar.
	EnvVar string

	// DefaultEnv is the fallback environment name. Defaults to DefaultEnvName.
	DefaultEnv string

	// Env is the snapshot of environment variables used for environment
	// selection and resolution of marker keys. If nil, the snapshot of the
	// process environment is taken.
	Env Env

	// Logger receives diagnostics. If nil, a colored console logger writing to
	// stderr is used.
	Logger *zerolog.Logger

	// DisableResolving disables resolution of marker keys.
	DisableResolving bool
}

// NewLogger method creates a console logger used for diagnostics by default.
func NewLogger(w io.Writer) *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().
		Timestamp().
		Logger()

	return &logger
}

// Init method loads the base and the environment configuration sources, merges
// them and resolves marker keys in the merged tree. The environment is selected
// by the variable Options.EnvVar. If the selector is not set or the selected
// environment has no source, Init logs a warning and falls back to
// Options.DefaultEnv; if the fallback source is missing too, the base
// configuration is used alone.
//
// If the base source is missing, Init returns an error wrapping
// ErrBaseNotFound and the *SourceError returned by the provider. Callers decide
// whether to terminate, see IsFatal.
func Init(ctx context.Context, opts Options) (M, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("%s: %w", errPref, ErrNoProvider)
	}

	opts.setDefaults()
	log := opts.Logger

	envName := opts.Env.Get(opts.EnvVar)

	if envName == "" {
		log.Warn().
			Str("var", opts.EnvVar).
			Msgf("%s is not defined. Using default %s environment", opts.EnvVar,
				opts.DefaultEnv)

		envName = opts.DefaultEnv
	}

	base, overlay, err := opts.load(ctx, envName)

	if err != nil {
		return nil, err
	}

	config := base

	if overlay != nil {
		config, _ = merger.Merge(base, overlay).(M)
	}

	if config == nil {
		config = M{}
	}

	if opts.DisableResolving {
		return config, nil
	}

	return ResolveMap(config, opts.Env), nil
}

func (o *Options) setDefaults() {
	if o.EnvVar == "" {
		o.EnvVar = DefaultEnvVar
	}

	if o.DefaultEnv == "" {
		o.DefaultEnv = DefaultEnvName
	}

	if o.Env == nil {
		o.Env = Environ()
	}

	if o.Logger == nil {
		o.Logger = NewLogger(os.Stderr)
	}
}

func (o *Options) load(ctx context.Context, envName string) (M, M, error) {
	var base, overlay M
	var envErr error

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		layer, err := o.Provider.LoadBase(gctx)

		if err != nil {
			if errors.Is(err, ErrSourceNotFound) {
				return fmt.Errorf("%s: %w: %w", errPref, ErrBaseNotFound, err)
			}

			return err
		}

		base = layer

		return nil
	})

	g.Go(func() error {
		layer, err := o.Provider.LoadEnv(gctx, envName)

		if err != nil {
			if errors.Is(err, ErrSourceNotFound) {
				envErr = err
				return nil
			}

			return err
		}

		overlay = layer

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	log := o.Logger

	if envErr == nil {
		log.Debug().Str("env", envName).Msg("configuration sources loaded")
		return base, overlay, nil
	}

	if envName == o.DefaultEnv {
		log.Debug().
			Str("env", envName).
			Err(envErr).
			Msg("no configuration found for default environment, using base configuration")

		return base, nil, nil
	}

	log.Warn().
		Str("env", envName).
		Err(envErr).
		Msgf("No configuration file found for %q environment, using %s instead", envName,
			o.DefaultEnv)

	overlay, err := o.Provider.LoadEnv(ctx, o.DefaultEnv)

	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			log.Debug().
				Str("env", o.DefaultEnv).
				Err(err).
				Msg("no configuration found for default environment, using base configuration")

			return base, nil, nil
		}

		return nil, nil, err
	}

	return base, overlay, nil
}
