// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

/*
Package envconf is configuration loader for the globalconf package, that
imports environment variables to the configuration tree. Locators for this
loader are regular expressions matched against variable names. For example:

	env:^MYAPP_
*/
package envconf

import (
	"context"
	"fmt"
	"regexp"

	"github.com/iph0/globalconf"
)

const errPref = "envconf"

// Loader imports environment variables as a flat configuration layer.
type Loader struct {
	env globalconf.Env
}

// NewLoader method creates new loader instance. If env is nil, the snapshot
// of the process environment is taken on each Load.
func NewLoader(env globalconf.Env) *Loader {
	return &Loader{
		env: env,
	}
}

// Load method imports environment variables, whose names match the regular
// expression in the locator.
func (l *Loader) Load(_ context.Context, loc *globalconf.Locator) ([]any, error) {
	if loc.Value == "" {
		return nil, fmt.Errorf("%s: empty pattern specified", errPref)
	}

	re, err := regexp.Compile(loc.Value)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errPref, err)
	}

	env := l.env

	if env == nil {
		env = globalconf.Environ()
	}

	config := make(globalconf.M)

	for key, value := range env {
		if re.MatchString(key) {
			config[key] = value
		}
	}

	if len(config) == 0 {
		return nil, nil
	}

	return []any{config}, nil
}
