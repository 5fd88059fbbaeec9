// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

package globalconf

import "strings"

const (
	markerPrefix = "@"
	markerSep    = ":"
)

// KeyKind is a kind of the configuration key.
type KeyKind int

// Configuration key kinds.
const (
	// KeyPlain is a key without special meaning.
	KeyPlain KeyKind = iota

	// KeyEnvDefault is a key of the form "@name". Its value is taken from the
	// environment variable NAME, if the variable is set and non-empty.
	KeyEnvDefault

	// KeyEnvDefaultCustom is a key of the form "@name:var". Its value is taken
	// from the environment variable VAR, if the variable is set and non-empty.
	KeyEnvDefaultCustom
)

var kindNames = map[KeyKind]string{
	KeyPlain:            "plain",
	KeyEnvDefault:       "env-default",
	KeyEnvDefaultCustom: "env-default-custom",
}

func (k KeyKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// Key is a classified configuration key.
type Key struct {
	Kind KeyKind

	// Name is the key under which the value is exposed in the resolved
	// configuration.
	Name string

	// Var is the environment variable name as written in the key. Empty for
	// plain keys.
	Var string
}

// ParseKey method classifies a raw configuration key. The "@name:var" form is
// checked first. Its name is the text between "@" and the first colon and its
// variable is the text up to the next colon; both must be non-empty. Any other
// key with "@" prefix and non-empty remainder is "@name", where the name is the
// whole remainder. Everything else is a plain key.
func ParseKey(raw string) Key {
	rest, ok := strings.CutPrefix(raw, markerPrefix)

	if !ok || rest == "" {
		return Key{Kind: KeyPlain, Name: raw}
	}

	if name, tail, found := strings.Cut(rest, markerSep); found && name != "" {
		varName, _, _ := strings.Cut(tail, markerSep)

		if varName != "" {
			return Key{
				Kind: KeyEnvDefaultCustom,
				Name: name,
				Var:  varName,
			}
		}
	}

	return Key{
		Kind: KeyEnvDefault,
		Name: rest,
		Var:  rest,
	}
}

// EnvName method returns the name of the environment variable, that overrides
// the value of the key. Returns empty string for plain keys.
func (k Key) EnvName() string {
	if k.Kind == KeyPlain {
		return ""
	}

	return strings.ToUpper(k.Var)
}

func (k Key) String() string {
	switch k.Kind {
	case KeyEnvDefault:
		return markerPrefix + k.Name
	case KeyEnvDefaultCustom:
		return markerPrefix + k.Name + markerSep + k.Var
	}

	return k.Name
}
