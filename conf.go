// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

package globalconf

import (
	"context"
	"fmt"

	mapstruct "github.com/mitchellh/mapstructure"

	"github.com/iph0/globalconf/merger"
)

const (
	errPref        = "globalconf"
	decoderTagName = "conf"
)

// M type is a convenient alias for a map[string]any map.
type M = map[string]any

// A type is a convenient alias for a []any slice.
type A = []any

// Loader is an interface for configuration loaders. A loader can return zero
// or more configuration layers for one locator.
type Loader interface {
	Load(ctx context.Context, loc *Locator) ([]any, error)
}

// ProcessorConfig is a structure with configuration parameters for configuration
// processor.
type ProcessorConfig struct {
	// Loaders specifies configuration loaders. Map keys reperesents names of
	// configuration loaders, that further can be used in configuration locators.
	Loaders map[string]Loader

	// Env is the snapshot of environment variables used to resolve marker keys.
	// If nil, the snapshot of the process environment is taken on each Load.
	Env Env

	// DisableResolving disables resolution of marker keys.
	DisableResolving bool
}

// Processor loads configuration layers from different sources and merges them
// into the one configuration tree. After merging the processor resolves marker
// keys, see Resolve.
type Processor struct {
	config ProcessorConfig
}

// NewProcessor method creates new configuration processor instance.
func NewProcessor(config ProcessorConfig) *Processor {
	if config.Loaders == nil {
		config.Loaders = make(map[string]Loader)
	}

	return &Processor{
		config: config,
	}
}

// Decode method decodes raw configuration data into structure. Note that the
// conf tags defined in the struct type can indicate which fields the values are
// mapped to. The decoder will make the following conversions:
//   - bools to string (true = "1", false = "0")
//   - numbers to string (base 10)
//   - bools to int/uint (true = 1, false = 0)
//   - strings to int/uint (base implied by prefix)
//   - int to bool (true if value != 0)
//   - string to bool (accepts: 1, t, T, TRUE, true, True, 0, f, F, FALSE, false,
//     False. Anything else is an error)
//   - empty array = empty map and vice versa
//   - negative numbers to overflowed uint values (base 10)
//   - slice of maps to a merged map
//   - single values are converted to slices if required. Each element also can
//     be converted. For example: "4" can become []int{4} if the target type is
//     an int slice.
//
// Weak typing makes values taken from environment variables, which are always
// strings, usable for typed fields.
func Decode(configRaw, config any) error {
	decoder, err := mapstruct.NewDecoder(
		&mapstruct.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           config,
			TagName:          decoderTagName,
		},
	)

	if err != nil {
		return err
	}

	err = decoder.Decode(configRaw)

	if err != nil {
		return fmt.Errorf("%s: %w", errPref, err)
	}

	return nil
}

// Load method loads configuration tree using configuration locators. The merge
// priority of loaded configuration layers depends on the order of configuration
// locators. Layers loaded by rightmost locator have highest priority. A locator
// is either a string "loader:value" or a map of type globalconf.M.
func (p *Processor) Load(ctx context.Context, locators ...any) (M, error) {
	if len(locators) == 0 {
		panic(fmt.Errorf("%s: no configuration locators specified", errPref))
	}

	layers, err := p.load(ctx, locators)

	if err != nil {
		return nil, err
	}

	config := merger.Merge(layers...)

	if config == nil {
		return nil, nil
	}

	if !p.config.DisableResolving {
		env := p.config.Env

		if env == nil {
			env = Environ()
		}

		config = Resolve(config, env)
	}

	if conf, ok := config.(M); ok {
		return conf, nil
	}

	return nil,
		fmt.Errorf("%s: loaded configuration must be a map of type globalconf.M, but got: %T",
			errPref, config)
}

func (p *Processor) load(ctx context.Context, locators []any) ([]any, error) {
	var allLayers []any

	for _, locator := range locators {
		switch loc := locator.(type) {
		case M:
			allLayers = append(allLayers, loc)
		case string:
			parsedLoc, err := ParseLocator(loc)

			if err != nil {
				return nil, err
			}

			loader, ok := p.config.Loaders[parsedLoc.Loader]

			if !ok {
				return nil, fmt.Errorf("%s: unknown loader: %s", errPref,
					parsedLoc.Loader)
			}

			layers, err := loader.Load(ctx, parsedLoc)

			if err != nil {
				return nil, err
			} else if len(layers) == 0 {
				continue
			}

			allLayers = append(allLayers, layers...)
		default:
			return nil,
				fmt.Errorf("%s: configuration locator must be a string or a map of type globalconf.M,"+
					" but got: %T", errPref, locator)
		}
	}

	return allLayers, nil
}
