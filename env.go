// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

package globalconf

import (
	"os"
	"strings"
)

// Env is a snapshot of environment variables.
type Env map[string]string

// Environ method takes a snapshot of the process environment.
func Environ() Env {
	pairs := os.Environ()
	env := make(Env, len(pairs))

	for _, pairRaw := range pairs {
		key, value, _ := strings.Cut(pairRaw, "=")

		if key == "" {
			continue
		}

		env[key] = value
	}

	return env
}

// Get method returns the value of the variable. Empty string means that the
// variable is not set or is set to empty string; both cases are treated the
// same way.
func (e Env) Get(name string) string {
	return e[name]
}
