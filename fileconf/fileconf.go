// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

/*
Package fileconf is configuration provider and loader for the globalconf
package, that loads configuration from YAML, JSON and TOML files located in one
configuration directory.

As a provider it looks for the base configuration file (common.* or default.*)
and for the file named after the environment (e.g. production.*):

	.
	└── configs/
	    ├── common.yml
	    ├── development.yml
	    └── production.yml

As a loader it accepts file patterns relative to the configuration directory.
Each matched file is loaded as a separate layer. For example:

	file:common.yml
	file:conf.d/*.json
*/
package fileconf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	yaml "gopkg.in/yaml.v3"

	"github.com/iph0/globalconf"
	"github.com/iph0/globalconf/merger"
)

const errPref = "fileconf"

// Defaults of the provider configuration.
const (
	DefaultConfigDir = "configs"
)

var (
	// DefaultBaseNames are the names of the base configuration file in order of
	// preference.
	DefaultBaseNames = []string{"common", "default"}

	// DefaultExts are the supported file extensions in merge order.
	DefaultExts = []string{"yml", "yaml", "json", "toml"}

	parsers = map[string]func(bytes []byte) (any, error){
		"yml":  unmarshalYAML,
		"yaml": unmarshalYAML,
		"json": unmarshalJSON,
		"toml": unmarshalTOML,
	}

	fileExtRe = regexp.MustCompile(`\.([^./\\]+)$`)
)

// Config is a structure with parameters of the file provider.
type Config struct {
	// RootDir is the application root. Defaults to the working directory.
	RootDir string `env:"GLOBALCONF_ROOT_DIR"`

	// ConfigDir is the directory with configuration files relative to RootDir.
	// Defaults to DefaultConfigDir.
	ConfigDir string `env:"GLOBALCONF_CONFIG_DIR"`

	// BaseNames are the names of the base configuration file without
	// extension. The first name with at least one existing file is used.
	// Defaults to DefaultBaseNames.
	BaseNames []string `env:"GLOBALCONF_BASE_NAMES" envSeparator:","`

	// Exts are the file extensions to look for. Files with the same name and
	// different extensions are merged in this order. Defaults to DefaultExts.
	Exts []string `env:"GLOBALCONF_EXTS" envSeparator:","`
}

// ConfigFromEnv method reads the provider configuration from environment
// variables GLOBALCONF_ROOT_DIR, GLOBALCONF_CONFIG_DIR, GLOBALCONF_BASE_NAMES
// and GLOBALCONF_EXTS. If environ is nil, the process environment is used.
func ConfigFromEnv(environ globalconf.Env) (Config, error) {
	var config Config

	err := env.ParseWithOptions(&config, env.Options{Environment: environ})

	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errPref, err)
	}

	return config, nil
}

// Validate method checks the provider configuration.
func (c Config) Validate() error {
	exts := make([]any, 0, len(parsers))

	for ext := range parsers {
		exts = append(exts, ext)
	}

	return validation.ValidateStruct(&c,
		validation.Field(&c.RootDir, validation.Required),
		validation.Field(&c.ConfigDir, validation.Required),
		validation.Field(&c.BaseNames,
			validation.Required,
			validation.Each(validation.Required, validation.By(checkName)),
		),
		validation.Field(&c.Exts,
			validation.Required,
			validation.Each(validation.In(exts...).Error("unknown file extension")),
		),
	)
}

func (c *Config) setDefaults() error {
	if c.RootDir == "" {
		wd, err := os.Getwd()

		if err != nil {
			return fmt.Errorf("%s: %w", errPref, err)
		}

		c.RootDir = wd
	}

	if c.ConfigDir == "" {
		c.ConfigDir = DefaultConfigDir
	}

	if len(c.BaseNames) == 0 {
		c.BaseNames = DefaultBaseNames
	}

	if len(c.Exts) == 0 {
		c.Exts = DefaultExts
	}

	return nil
}

// Provider loads configuration files from the configuration directory. It
// implements both globalconf.Provider and globalconf.Loader.
type Provider struct {
	config Config
	dir    string
}

// NewProvider method creates new file provider. Empty fields of the
// configuration are set to defaults.
func NewProvider(config Config) (*Provider, error) {
	if err := config.setDefaults(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid configuration: %w", errPref, err)
	}

	return &Provider{
		config: config,
		dir:    filepath.Join(config.RootDir, config.ConfigDir),
	}, nil
}

// InitGlobalConfig method loads the application configuration from the
// configuration directory with default settings of globalconf.Init.
func InitGlobalConfig(ctx context.Context, config Config) (globalconf.M, error) {
	provider, err := NewProvider(config)

	if err != nil {
		return nil, err
	}

	return globalconf.Init(ctx,
		globalconf.Options{
			Provider: provider,
		},
	)
}

// Dir method returns the configuration directory.
func (p *Provider) Dir() string {
	return p.dir
}

// LoadBase method loads the base configuration file.
func (p *Provider) LoadBase(ctx context.Context) (globalconf.M, error) {
	for _, name := range p.config.BaseNames {
		config, found, err := p.loadNamed(ctx, name)

		if err != nil {
			return nil, err
		}

		if found {
			return config, nil
		}
	}

	return nil, &globalconf.SourceError{
		Name: strings.Join(p.config.BaseNames, "|"),
		Path: p.dir,
		Hint: Layout(p.config.ConfigDir, p.config.BaseNames[0]),
		Err:  globalconf.ErrSourceNotFound,
	}
}

// LoadEnv method loads the configuration file of the environment.
func (p *Provider) LoadEnv(ctx context.Context, name string) (globalconf.M, error) {
	if err := checkName(name); err != nil {
		return nil, fmt.Errorf("%s: environment %q: %w", errPref, name, err)
	}

	config, found, err := p.loadNamed(ctx, name)

	if err != nil {
		return nil, err
	}

	if !found {
		return nil, &globalconf.SourceError{
			Name: name,
			Path: p.dir,
			Err:  globalconf.ErrSourceNotFound,
		}
	}

	return config, nil
}

// Load method loads configuration layers from files matching the pattern in
// the locator. Pattern is relative to the configuration directory.
func (p *Provider) Load(ctx context.Context, loc *globalconf.Locator) ([]any, error) {
	absPattern := filepath.Join(p.dir, loc.Value)
	paths, err := filepath.Glob(absPattern)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errPref, err)
	}

	var layers []any

	for _, path := range paths {
		matches := fileExtRe.FindStringSubmatch(path)

		if matches == nil {
			return nil, fmt.Errorf("%s: file extension not specified: %s",
				errPref, path)
		}

		ext := matches[1]
		parser, ok := parsers[ext]

		if !ok {
			return nil, fmt.Errorf("%s: unknown file extension .%s",
				errPref, ext)
		}

		data, err := parseFile(ctx, path, parser)

		if err != nil {
			return nil, err
		}

		if data == nil {
			continue
		}

		layers = append(layers, data)
	}

	return layers, nil
}

// loadNamed loads and merges all files with the name and supported extensions.
func (p *Provider) loadNamed(ctx context.Context, name string) (globalconf.M, bool, error) {
	var layers []any
	found := false

	for _, ext := range p.config.Exts {
		path := filepath.Join(p.dir, name+"."+ext)
		_, err := os.Stat(path)

		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return nil, false, fmt.Errorf("%s: %w", errPref, err)
		}

		data, err := parseFile(ctx, path, parsers[ext])

		if err != nil {
			return nil, false, err
		}

		found = true
		layers = append(layers, data)
	}

	if !found {
		return nil, false, nil
	}

	config := merger.Merge(layers...)

	if config == nil {
		return globalconf.M{}, true, nil
	}

	m, ok := config.(globalconf.M)

	if !ok {
		return nil, false,
			fmt.Errorf("%s: configuration %s must be a map, but got: %T", errPref,
				filepath.Join(p.dir, name), config)
	}

	return m, true, nil
}

func parseFile(ctx context.Context, path string,
	parser func([]byte) (any, error)) (any, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bytes, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errPref, err)
	}

	data, err := parser(bytes)

	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errPref, path, err)
	}

	return data, nil
}

// Layout method returns a hint on the expected layout of the configuration
// directory.
func Layout(configDir, baseName string) string {
	var b strings.Builder

	b.WriteString("Please create a directory as suggested below:\n")
	b.WriteString(".\n")
	fmt.Fprintf(&b, "└── %s/\n", configDir)
	fmt.Fprintf(&b, "    ├── %s.(yml|json|toml)\n", baseName)
	fmt.Fprintf(&b, "    ├── %s.(yml|json|toml)\n", globalconf.DefaultEnvName)
	b.WriteString("    └── production.(yml|json|toml)\n")

	return b.String()
}

func checkName(value any) error {
	name, _ := value.(string)

	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.New("must not contain path elements")
	}

	return nil
}

func unmarshalYAML(bytes []byte) (any, error) {
	var data any
	err := yaml.Unmarshal(bytes, &data)

	if err != nil {
		return nil, err
	}

	return data, nil
}

func unmarshalJSON(bytes []byte) (any, error) {
	var data any
	err := json.Unmarshal(bytes, &data)

	if err != nil {
		return nil, err
	}

	return data, nil
}

func unmarshalTOML(bytes []byte) (any, error) {
	var data map[string]any
	err := toml.Unmarshal(bytes, &data)

	if err != nil {
		return nil, err
	}

	return data, nil
}
