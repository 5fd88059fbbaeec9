// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

package globalconf

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned by providers when the requested
	// configuration source does not exist.
	ErrSourceNotFound = errors.New("configuration source not found")

	// ErrBaseNotFound is returned by Init when the base configuration source
	// does not exist. It is the only fatal condition of the initialization.
	ErrBaseNotFound = errors.New("base configuration not found")

	// ErrNoProvider is returned by Init when no provider is specified.
	ErrNoProvider = errors.New("no configuration provider specified")
)

// SourceError describes a configuration source, that could not be loaded.
type SourceError struct {
	// Name is the name of the source, e.g. "common" or "production".
	Name string

	// Path is the location where the source was looked up.
	Path string

	// Hint is an optional human-readable hint on the expected layout of the
	// sources.
	Hint string

	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s for %s", e.Name, e.Err, e.Path)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsFatal method reports whether the error returned by Init must stop the
// application.
func IsFatal(err error) bool {
	return errors.Is(err, ErrBaseNotFound) || errors.Is(err, ErrNoProvider)
}
