// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

// Command globalconf prints the resolved configuration of an application.
//
//	globalconf -root /srv/myapp -dir configs -format json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	yaml "gopkg.in/yaml.v3"

	"github.com/iph0/globalconf"
	"github.com/iph0/globalconf/fileconf"
)

var (
	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle  = lipgloss.NewStyle().PaddingLeft(2)
)

var encoders = map[string]func(io.Writer, globalconf.M) error{
	"yaml": encodeYAML,
	"json": encodeJSON,
	"toml": encodeTOML,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, globalconf.Environ())
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer,
	env globalconf.Env) int {

	fileCfg, err := fileconf.ConfigFromEnv(env)

	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render(err.Error()))
		return 2
	}

	fs := flag.NewFlagSet("globalconf", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&fileCfg.RootDir, "root", fileCfg.RootDir, "application root directory")
	fs.StringVar(&fileCfg.ConfigDir, "dir", fileCfg.ConfigDir, "configuration directory relative to root")
	envVar := fs.String("env-var", globalconf.DefaultEnvVar, "variable that selects the environment")
	defaultEnv := fs.String("default-env", globalconf.DefaultEnvName, "fallback environment")
	format := fs.String("format", "yaml", "output format: yaml, json or toml")
	verbose := fs.Bool("v", false, "verbose diagnostics")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	encode, ok := encoders[*format]

	if !ok {
		fmt.Fprintln(stderr, errorStyle.Render("unknown output format: "+*format))
		return 2
	}

	level := zerolog.InfoLevel

	if *verbose {
		level = zerolog.DebugLevel
	}

	logger := globalconf.NewLogger(stderr).Level(level)

	provider, err := fileconf.NewProvider(fileCfg)

	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render(err.Error()))
		return 2
	}

	config, err := globalconf.Init(ctx,
		globalconf.Options{
			Provider:   provider,
			EnvVar:     *envVar,
			DefaultEnv: *defaultEnv,
			Env:        env,
			Logger:     &logger,
		},
	)

	if err != nil {
		printError(stderr, err)
		return 1
	}

	if err := encode(stdout, config); err != nil {
		printError(stderr, err)
		return 1
	}

	return 0
}

func printError(w io.Writer, err error) {
	var srcErr *globalconf.SourceError

	if !errors.Is(err, globalconf.ErrBaseNotFound) || !errors.As(err, &srcErr) {
		fmt.Fprintln(w, errorStyle.Render(err.Error()))
		return
	}

	fmt.Fprintln(w,
		badgeStyle.Render(" ENOENT "),
		errorStyle.Render(fmt.Sprintf("%s config file not found for %s", srcErr.Name,
			srcErr.Path)),
	)

	if srcErr.Hint != "" {
		fmt.Fprintln(w, hintStyle.Render(srcErr.Hint))
	}
}

func encodeYAML(w io.Writer, config globalconf.M) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(config); err != nil {
		return err
	}

	return enc.Close()
}

func encodeJSON(w io.Writer, config globalconf.M) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(config)
}

func encodeTOML(w io.Writer, config globalconf.M) error {
	return toml.NewEncoder(w).Encode(config)
}
