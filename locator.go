// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

package globalconf

import (
	"fmt"
	"strings"
)

const locatorSep = ":"

// Locator is a parsed configuration locator. Loader is the name of the loader
// registered in the processor and Value is the loader specific part of the
// locator, for example a file pattern or a map key.
type Locator struct {
	Loader string
	Value  string
}

// ParseLocator method parses a raw configuration locator of the form
// "loader:value".
func ParseLocator(rawLoc string) (*Locator, error) {
	if rawLoc == "" {
		return nil, fmt.Errorf("%s: empty configuration locator specified", errPref)
	}

	tokens := strings.SplitN(rawLoc, locatorSep, 2)

	if len(tokens) < 2 || tokens[0] == "" {
		return nil, fmt.Errorf("%s: missing loader name in configuration locator: %s",
			errPref, rawLoc)
	}

	return &Locator{
		Loader: tokens[0],
		Value:  tokens[1],
	}, nil
}

func (l *Locator) String() string {
	return l.Loader + locatorSep + l.Value
}
