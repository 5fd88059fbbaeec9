// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

/*
Package maploader is configuration loader and provider for the globalconf
package. It loads configuration layers from a map. Configuration locators for
this loader are just keys of the map. For example:

	map:foo
	map:bar

As a provider it serves the base configuration and environment configurations
kept in memory, which is handy for tests and for applications that embed their
configuration.
*/
package maploader

import (
	"context"
	"fmt"

	"github.com/iph0/globalconf"
	"github.com/iph0/globalconf/merger"
)

// Loader loads configuration layers from a map.
type Loader struct {
	m globalconf.M
}

// NewLoader method creates new loader instance.
func NewLoader(m globalconf.M) *Loader {
	return &Loader{
		m: m,
	}
}

// Load method loads configuration layer from a map. Unknown keys produce no
// layers.
func (l *Loader) Load(_ context.Context, loc *globalconf.Locator) ([]any, error) {
	layer, ok := l.m[loc.Value]

	if !ok || layer == nil {
		return nil, nil
	}

	return []any{merger.Merge(layer)}, nil
}

// Provider serves configuration sources from memory.
type Provider struct {
	base globalconf.M
	envs map[string]globalconf.M
}

// NewProvider method creates new provider instance. A nil base means that the
// base configuration is missing.
func NewProvider(base globalconf.M, envs map[string]globalconf.M) *Provider {
	return &Provider{
		base: base,
		envs: envs,
	}
}

// LoadBase method returns a copy of the base configuration.
func (p *Provider) LoadBase(ctx context.Context) (globalconf.M, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.base == nil {
		return nil, &globalconf.SourceError{
			Name: "base",
			Path: "memory",
			Err:  globalconf.ErrSourceNotFound,
		}
	}

	return copyMap(p.base), nil
}

// LoadEnv method returns a copy of the configuration of the environment.
func (p *Provider) LoadEnv(ctx context.Context, name string) (globalconf.M, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config, ok := p.envs[name]

	if !ok || config == nil {
		return nil, &globalconf.SourceError{
			Name: name,
			Path: fmt.Sprintf("memory:%s", name),
			Err:  globalconf.ErrSourceNotFound,
		}
	}

	return copyMap(config), nil
}

func copyMap(m globalconf.M) globalconf.M {
	return merger.Merge(m).(globalconf.M)
}
